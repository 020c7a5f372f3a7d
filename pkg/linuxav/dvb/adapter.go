package dvb

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultRoot is where udev creates the DVB adapter directories.
const DefaultRoot = "/dev/dvb"

// FrontendPath returns the conventional path of frontend n on an adapter.
func FrontendPath(root string, adapter, n int) string {
	return filepath.Join(root, fmt.Sprintf("adapter%d", adapter), fmt.Sprintf("frontend%d", n))
}

// DemuxPath returns the conventional path of demux n on an adapter.
func DemuxPath(root string, adapter, n int) string {
	return filepath.Join(root, fmt.Sprintf("adapter%d", adapter), fmt.Sprintf("demux%d", n))
}

// FindAdapters lists the adapterN directories below root with their device
// nodes. A missing root means no adapters, not an error.
func FindAdapters(root string) ([]AdapterInfo, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return []AdapterInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read dvb directory: %w", err)
	}

	var adapters []AdapterInfo
	for _, entry := range entries {
		num, ok := nodeIndex(entry.Name(), "adapter")
		if !ok {
			continue
		}

		adapterPath := filepath.Join(root, entry.Name())
		nodes, err := os.ReadDir(adapterPath)
		if err != nil {
			continue
		}

		info := AdapterInfo{Number: num, Path: adapterPath}
		for _, node := range nodes {
			nodePath := filepath.Join(adapterPath, node.Name())
			switch {
			case strings.HasPrefix(node.Name(), "frontend"):
				info.Frontends = append(info.Frontends, nodePath)
			case strings.HasPrefix(node.Name(), "demux"):
				info.Demuxes = append(info.Demuxes, nodePath)
			case strings.HasPrefix(node.Name(), "dvr"):
				info.DVRs = append(info.DVRs, nodePath)
			}
		}
		adapters = append(adapters, info)
	}

	sort.Slice(adapters, func(i, j int) bool {
		return adapters[i].Number < adapters[j].Number
	})
	return adapters, nil
}

// nodeIndex parses names like "adapter3" into 3.
func nodeIndex(name, prefix string) (int, bool) {
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(name[len(prefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
