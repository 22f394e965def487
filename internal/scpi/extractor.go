package scpi

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abnasim/TekAutomate/internal/document"
)

// extractState is the fold state of the single forward pass: at most one
// open record, the section its buffered lines belong to, and the buffer
// itself. There is no lookback beyond the buffer.
type extractState struct {
	current *Record
	section Section
	buffer  []string
}

// Extractor walks the classified block stream once and assembles command
// records. Repeated headers for the same mnemonic merge rather than
// duplicate; content before the first header is dropped silently, since
// manuals open with front matter no record can own.
type Extractor struct {
	index      *Index
	classifier *Classifier
	log        *logrus.Logger
}

// NewExtractor creates an extractor over the given index and manual profile.
func NewExtractor(index *Index, profile Profile, log *logrus.Logger) *Extractor {
	if log == nil {
		log = logrus.New()
	}
	return &Extractor{
		index:      index,
		classifier: NewClassifier(index, profile),
		log:        log,
	}
}

// Extract performs the single forward pass. The returned records are in
// first-seen order, one per canonical mnemonic.
func (e *Extractor) Extract(blocks []document.Block) []*Record {
	var (
		st      extractState
		ordered []*Record
		byKey   = make(map[string]*Record)
		headers int
	)

	finalize := func() {
		e.flush(&st)
		if st.current == nil {
			return
		}
		key := Normalize(st.current.Mnemonic)
		if existing, seen := byKey[key]; seen {
			existing.Merge(st.current)
		} else {
			byKey[key] = st.current
			ordered = append(ordered, st.current)
		}
		st.current = nil
	}

	for _, b := range blocks {
		text := strings.TrimSpace(b.Text)
		if text == "" {
			continue
		}

		cls := e.classifier.Classify(b)
		switch cls.Role {
		case RoleHeader:
			finalize()
			headers++
			rec := &Record{Mnemonic: cls.Mnemonic}
			if group, ok := e.index.GroupOf(cls.Mnemonic); ok {
				rec.Group = group
				rec.GroupResolved = true
			}
			st.current = rec
			st.section = SectionDescription
			st.buffer = nil

		case RoleSection:
			e.flush(&st)
			st.section = cls.Section
			if cls.Remainder != "" {
				st.buffer = append(st.buffer, cls.Remainder)
			}

		case RoleContent:
			if st.current == nil {
				continue // front matter before the first command
			}
			if isNoteLine(text) {
				st.current.Notes = append(st.current.Notes, text)
				continue
			}
			st.buffer = append(st.buffer, text)
		}
	}
	finalize()

	e.log.WithFields(logrus.Fields{
		"headers": headers,
		"records": len(ordered),
	}).Debug("block stream consumed")

	return ordered
}

// flush moves the buffered lines into the open record's current section.
// With no open record the buffer is discarded.
func (e *Extractor) flush(st *extractState) {
	if st.current != nil && len(st.buffer) > 0 {
		st.current.setSection(st.section, st.buffer)
	}
	st.buffer = nil
}
