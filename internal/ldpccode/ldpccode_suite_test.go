package ldpccode_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLdpccode(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ldpccode Suite")
}
