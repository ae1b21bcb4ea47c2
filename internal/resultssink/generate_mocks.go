//go:generate mockgen -destination=mock_resultssink.go -package=resultssink github.com/sarchlab/ldpcsim/internal/resultssink ResultsSink

package resultssink
