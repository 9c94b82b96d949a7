package storage

import (
	"strings"

	"github.com/yourusername/phone-price-bot/internal/domain/constants"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
	"github.com/yourusername/phone-price-bot/internal/domain/repository"
)

type memorySpecLinks struct {
	urls  map[string]string
	names []string
}

// NewSpecLinks flat name -> url jadvalini quradi. Nomlar trim qilinadi,
// takroriy nomda oxirgi url g'olib, nom esa birinchi uchragan o'rnida qoladi.
func NewSpecLinks(links []entity.SpecLink) repository.SpecLinkRepository {
	s := &memorySpecLinks{urls: make(map[string]string, len(links))}
	for _, link := range links {
		name := strings.TrimSpace(link.Name)
		if name == "" {
			continue
		}
		url := strings.TrimSpace(link.URL)
		if url == "" {
			url = constants.SpecURLUnavailable
		}
		if _, exists := s.urls[name]; !exists {
			s.names = append(s.names, name)
		}
		s.urls[name] = url
	}
	return s
}

func (s *memorySpecLinks) Lookup(name string) (string, bool) {
	url, ok := s.urls[strings.TrimSpace(name)]
	return url, ok
}

func (s *memorySpecLinks) Names() []string { return append([]string(nil), s.names...) }

func (s *memorySpecLinks) Len() int { return len(s.names) }
