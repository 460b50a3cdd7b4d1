package console

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is the fallback for keys missing from another locale.
const DefaultLocale = "en"

//go:embed messages/*.yaml
var messageFiles embed.FS

// Messages is a localized message catalog keyed by dotted paths ("menu.exit").
type Messages struct {
	locales map[string]map[string]string
}

// LoadMessages parses the embedded catalogs, one YAML file per locale.
func LoadMessages() (*Messages, error) {
	entries, err := messageFiles.ReadDir("messages")
	if err != nil {
		return nil, fmt.Errorf("failed to list message catalogs: %w", err)
	}

	m := &Messages{locales: make(map[string]map[string]string, len(entries))}
	for _, e := range entries {
		data, err := messageFiles.ReadFile(path.Join("messages", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		if err := m.add(strings.TrimSuffix(e.Name(), path.Ext(e.Name())), data); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Messages) add(locale string, data []byte) error {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to parse %s messages: %w", locale, err)
	}
	flat := make(map[string]string)
	flatten("", tree, flat)
	m.locales[locale] = flat
	return nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Locales lists the available locales, sorted.
func (m *Messages) Locales() []string {
	out := make([]string, 0, len(m.locales))
	for l := range m.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Has reports whether the locale is available.
func (m *Messages) Has(locale string) bool {
	_, ok := m.locales[locale]
	return ok
}

// Get returns the message for key, formatted with args.
// Missing keys fall back to DefaultLocale, then to the key itself.
func (m *Messages) Get(locale, key string, args ...any) string {
	msg, ok := m.locales[locale][key]
	if !ok {
		msg, ok = m.locales[DefaultLocale][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
