package footnotes

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

const (
	DefaultBaseClass = "Footnotes"
	DefaultTitle     = "Footnotes"
	DefaultTitleID   = "footnotes-label"
)

// Classes holds per-element class names appended to the generated BEM class.
type Classes struct {
	Container string `json:"container" yaml:"container"`
	Title     string `json:"title" yaml:"title"`
	Ref       string `json:"ref" yaml:"ref"`
	List      string `json:"list" yaml:"list"`
	ListItem  string `json:"listItem" yaml:"listItem"`
	BackLink  string `json:"backLink" yaml:"backLink"`
}

// BackLinkLabelFunc produces the accessible label of a back-link. position is
// the zero-based position of entry in the rendered list. Implementations must
// be pure; the result is attribute-escaped and otherwise inserted verbatim.
type BackLinkLabelFunc func(entry Entry, position int) string

// Sanitizer cleans footnote descriptions before they are written into the
// list. *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(string) string
}

// Config is the configuration consumed by a Session.
type Config struct {
	BaseClass     string
	Title         string
	TitleID       string
	Classes       Classes
	BackLinkLabel BackLinkLabelFunc
	Sanitizer     Sanitizer
	Logger        *slog.Logger
	Reporter      Reporter
}

// Option mutates a Config before a Session is constructed.
type Option func(*Config)

// DefaultConfig returns the configuration used when no options are supplied.
func DefaultConfig() Config {
	return Config{
		BaseClass:     DefaultBaseClass,
		Title:         DefaultTitle,
		TitleID:       DefaultTitleID,
		BackLinkLabel: DefaultBackLinkLabel,
	}
}

// DefaultBackLinkLabel renders "Back to reference N" with a one-based N.
func DefaultBackLinkLabel(_ Entry, position int) string {
	return fmt.Sprintf("Back to reference %d", position+1)
}

// LabelTemplate builds a BackLinkLabelFunc from a pattern. Supported
// placeholders are {n} (one-based position), {index} and {id}. An empty
// pattern yields DefaultBackLinkLabel.
func LabelTemplate(pattern string) BackLinkLabelFunc {
	if strings.TrimSpace(pattern) == "" {
		return DefaultBackLinkLabel
	}
	return func(entry Entry, position int) string {
		return strings.NewReplacer(
			"{n}", strconv.Itoa(position+1),
			"{index}", strconv.Itoa(entry.Index),
			"{id}", entry.ID,
		).Replace(pattern)
	}
}

// WithBaseClass sets the BEM block class. Blank values are ignored.
func WithBaseClass(name string) Option {
	return func(cfg *Config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.BaseClass = trimmed
		}
	}
}

// WithTitle sets the heading text of the footnote list.
func WithTitle(title string) Option {
	return func(cfg *Config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.Title = trimmed
		}
	}
}

// WithTitleID sets the id of the list heading, referenced by every anchor's
// aria-describedby.
func WithTitleID(id string) Option {
	return func(cfg *Config) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			cfg.TitleID = trimmed
		}
	}
}

// WithClasses sets the per-element class overrides.
func WithClasses(classes Classes) Option {
	return func(cfg *Config) {
		cfg.Classes = classes
	}
}

// WithBackLinkLabel injects the back-link label generator.
func WithBackLinkLabel(fn BackLinkLabelFunc) Option {
	return func(cfg *Config) {
		if fn != nil {
			cfg.BackLinkLabel = fn
		}
	}
}

// WithSanitizer cleans descriptions through s when the list is rendered.
func WithSanitizer(s Sanitizer) Option {
	return func(cfg *Config) {
		cfg.Sanitizer = s
	}
}

// WithLogger sets the logger used by the default reporter.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithReporter replaces the default diagnostic reporter.
func WithReporter(r Reporter) Option {
	return func(cfg *Config) {
		cfg.Reporter = r
	}
}

func (cfg Config) className(element, override string) string {
	name := cfg.BaseClass
	if element != "" {
		name += "__" + element
	}
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		name += " " + trimmed
	}
	return name
}
