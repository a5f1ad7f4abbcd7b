package interview

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultQuestions []byte

type bankDocument struct {
	Roles   map[string][]string `yaml:"roles"`
	Default []string            `yaml:"default"`
}

// Bank is the read-only set of fallback questions keyed by role.
type Bank struct {
	roles    map[string][]string
	fallback []string

	mu  sync.Mutex
	rnd *rand.Rand
}

// DefaultBank returns the bank built from the embedded question document.
func DefaultBank() *Bank {
	b, err := ParseBank(defaultQuestions)
	if err != nil {
		panic(fmt.Sprintf("embedded question bank: %v", err))
	}
	return b
}

// LoadBank reads a question bank document from path.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question bank %q: %w", path, err)
	}
	b, err := ParseBank(data)
	if err != nil {
		return nil, fmt.Errorf("question bank %q: %w", path, err)
	}
	return b, nil
}

// ParseBank decodes a YAML question document.
func ParseBank(data []byte) (*Bank, error) {
	var doc bankDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	fallback := cleanQuestions(doc.Default)
	if len(fallback) == 0 {
		return nil, fmt.Errorf("default question pool is empty")
	}

	roles := make(map[string][]string, len(doc.Roles))
	for role, questions := range doc.Roles {
		cleaned := cleanQuestions(questions)
		if len(cleaned) == 0 {
			continue
		}
		roles[strings.TrimSpace(role)] = cleaned
	}

	return &Bank{
		roles:    roles,
		fallback: fallback,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func cleanQuestions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, q := range in {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// Pool returns a copy of the questions for role, or the default pool.
func (b *Bank) Pool(role string) []string {
	pool := b.pool(role)
	out := make([]string, len(pool))
	copy(out, pool)
	return out
}

func (b *Bank) pool(role string) []string {
	if pool, ok := b.roles[strings.TrimSpace(role)]; ok {
		return pool
	}
	return b.fallback
}

// Pick chooses uniformly among the role's questions not present in priors.
// When every entry was already asked the first entry is returned.
func (b *Bank) Pick(role string, priors []string) string {
	pool := b.pool(role)
	asked := normalizeAll(priors)

	available := make([]string, 0, len(pool))
	for _, q := range pool {
		if _, seen := asked[Normalize(q)]; !seen {
			available = append(available, q)
		}
	}

	if len(available) == 0 {
		return pool[0]
	}
	return available[b.intn(len(available))]
}

// Random returns any question from the role's pool.
func (b *Bank) Random(role string) string {
	pool := b.pool(role)
	return pool[b.intn(len(pool))]
}

func (b *Bank) intn(n int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rnd.Intn(n)
}
