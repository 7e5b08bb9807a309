package vocab

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"go-waste-inspector/internal/logger"
)

// Vocabulary is the fixed, ordered set of material labels the engine may
// emit. It is immutable after construction and safe for concurrent reads.
type Vocabulary struct {
	labels []string
	index  map[string]int
}

// Source is one candidate origin for the label list. Sources are consulted
// in order; the first one that yields a non-empty list wins.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]string, error)
}

// New builds a vocabulary from the given labels. Duplicates and blank
// entries are dropped, original order is preserved.
func New(labels []string) (*Vocabulary, error) {
	v := &Vocabulary{index: make(map[string]int, len(labels))}
	for _, raw := range labels {
		label := strings.TrimSpace(raw)
		if label == "" || strings.HasPrefix(label, "#") {
			continue
		}
		if _, seen := v.index[label]; seen {
			continue
		}
		v.index[label] = len(v.labels)
		v.labels = append(v.labels, label)
	}
	if len(v.labels) == 0 {
		return nil, fmt.Errorf("vocabulary is empty")
	}
	return v, nil
}

// Default returns the built-in vocabulary used when no external source is
// available. Keep it aligned with the labels the decision rules emit.
func Default() *Vocabulary {
	v, _ := New([]string{
		"plastic_bottle",
		"glass_bottle",
		"aluminum_can",
		"tin_can",
		"paper",
		"cardboard",
		"plastic_container",
		"plastic_bag",
		"food_waste",
		"styrofoam",
		"electronic_waste",
		"battery",
		"glass_jar",
		"textile",
		"hazardous_waste",
	})
	return v
}

// Resolve walks the candidate sources in order and returns the first
// vocabulary that loads successfully. It never fails: when every source
// errors out the built-in default list is substituted, so a missing or
// corrupt labels file can not halt the service.
func Resolve(ctx context.Context, sources ...Source) *Vocabulary {
	for _, src := range sources {
		labels, err := src.Load(ctx)
		if err != nil {
			logger.WithComponent("vocabulary").WithError(err).WithFields(logrus.Fields{
				"source": src.Name(),
			}).Warn("Vocabulary source unavailable, trying next")
			continue
		}
		v, err := New(labels)
		if err != nil {
			logger.WithComponent("vocabulary").WithError(err).WithFields(logrus.Fields{
				"source": src.Name(),
			}).Warn("Vocabulary source yielded no labels, trying next")
			continue
		}
		logger.WithComponent("vocabulary").WithFields(logrus.Fields{
			"source": src.Name(),
			"labels": v.Len(),
		}).Info("Vocabulary loaded")
		return v
	}

	v := Default()
	logger.WithComponent("vocabulary").WithFields(logrus.Fields{
		"labels": v.Len(),
	}).Info("Using built-in default vocabulary")
	return v
}

// Len returns the number of labels.
func (v *Vocabulary) Len() int {
	return len(v.labels)
}

// At returns the label at position i.
func (v *Vocabulary) At(i int) string {
	return v.labels[i]
}

// Contains reports whether label is part of the vocabulary.
func (v *Vocabulary) Contains(label string) bool {
	_, ok := v.index[label]
	return ok
}

// Labels returns a copy of the ordered label list.
func (v *Vocabulary) Labels() []string {
	out := make([]string, len(v.labels))
	copy(out, v.labels)
	return out
}

// FileSource loads a newline-delimited label list from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string {
	return "file:" + s.Path
}

func (s FileSource) Load(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open labels file: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		labels = append(labels, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read labels file: %w", err)
	}
	return labels, nil
}

// ListDownloader fetches raw label-list bytes from a remote store. The Azure
// blob implementation lives in internal/storage.
type ListDownloader interface {
	Download(ctx context.Context) ([]byte, error)
}

// RemoteSource adapts a ListDownloader into a vocabulary Source.
type RemoteSource struct {
	Label      string
	Downloader ListDownloader
}

func (s RemoteSource) Name() string {
	return "remote:" + s.Label
}

func (s RemoteSource) Load(ctx context.Context) ([]string, error) {
	data, err := s.Downloader.Download(ctx)
	if err != nil {
		return nil, fmt.Errorf("download label list: %w", err)
	}
	return strings.Split(string(data), "\n"), nil
}

// StaticSource serves a fixed label list. Used in tests and as an explicit
// override hook.
type StaticSource struct {
	Label  string
	Values []string
}

func (s StaticSource) Name() string {
	return "static:" + s.Label
}

func (s StaticSource) Load(ctx context.Context) ([]string, error) {
	if len(s.Values) == 0 {
		return nil, fmt.Errorf("static source %q has no labels", s.Label)
	}
	return s.Values, nil
}
