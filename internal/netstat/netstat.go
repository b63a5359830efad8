package netstat

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/Dicklesworthstone/network_traffic_monitor/internal/model"
)

// SelectorAll sums counters across every interface the OS reports.
const SelectorAll = "all"

var (
	// ErrNoInterfaces means the OS reported an empty interface table.
	ErrNoInterfaces = errors.New("no network interfaces found")
	// ErrInterfaceNotFound means the selector names an interface absent from
	// the current snapshot.
	ErrInterfaceNotFound = errors.New("interface not found")
)

// Source reads cumulative sent/recv byte counters for a selector, either a
// specific interface name or SelectorAll. Pure read, no state.
type Source interface {
	Counters(selector string) (model.Counters, error)
}

// SystemSource queries the OS per-interface statistics via gopsutil.
type SystemSource struct{}

func NewSystemSource() SystemSource { return SystemSource{} }

func (SystemSource) Counters(selector string) (model.Counters, error) {
	stats, err := net.IOCounters(true)
	if err != nil {
		return model.Counters{}, fmt.Errorf("reading interface counters: %w", err)
	}
	return pick(stats, selector)
}

// Probe verifies the OS reports at least one interface. Runs once before
// sampling starts; after that an empty table is a topology change, not an
// error.
func (SystemSource) Probe() error {
	stats, err := net.IOCounters(true)
	if err != nil {
		return fmt.Errorf("reading interface counters: %w", err)
	}
	if len(stats) == 0 {
		return ErrNoInterfaces
	}
	return nil
}

// Interfaces returns the names of all interfaces currently reported,
// sorted for stable output.
func (SystemSource) Interfaces() ([]string, error) {
	stats, err := net.IOCounters(true)
	if err != nil {
		return nil, fmt.Errorf("reading interface counters: %w", err)
	}
	if len(stats) == 0 {
		return nil, ErrNoInterfaces
	}
	names := make([]string, 0, len(stats))
	for _, st := range stats {
		names = append(names, st.Name)
	}
	sort.Strings(names)
	return names, nil
}

// pick resolves a selector against one OS snapshot. Interfaces appearing or
// disappearing between snapshots silently change what SelectorAll sums; an
// empty snapshot sums to zero. Zero-interfaces-at-all is only an error at
// construction, via Probe.
func pick(stats []net.IOCountersStat, selector string) (model.Counters, error) {
	if selector == SelectorAll {
		var c model.Counters
		for _, st := range stats {
			c.Sent += st.BytesSent
			c.Recv += st.BytesRecv
		}
		return c, nil
	}
	for _, st := range stats {
		if st.Name == selector {
			return model.Counters{Sent: st.BytesSent, Recv: st.BytesRecv}, nil
		}
	}
	return model.Counters{}, fmt.Errorf("%w: %q", ErrInterfaceNotFound, selector)
}
