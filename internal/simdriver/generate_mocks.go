//go:generate mockgen -destination=mock_channel.go -package=simdriver github.com/sarchlab/ldpcsim/internal/simdriver simChannel

package simdriver
