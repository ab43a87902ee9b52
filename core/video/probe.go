package video

import (
	"os"
	"sort"

	"github.com/dhowden/tag"
)

// ContainerTags lists the tag names present in an MP4-family container
// (mp4, m4v, mov). Files tag cannot parse return nil.
func ContainerTags(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil
	}

	var names []string
	for k, v := range m.Raw() {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
