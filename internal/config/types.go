package config

// Document is a parsed brand book: the sections shown in the main pane,
// the sidebar navigation that links into them, the bottom navigation bar,
// and the accent choices offered by the settings controls.
type Document struct {
	Title     string    `yaml:"title" validate:"required,min=1,max=120"`
	Accents   []Accent  `yaml:"accents,omitempty" validate:"omitempty,dive"`
	Audiences []string  `yaml:"audiences,omitempty"`
	Ages      []string  `yaml:"ages,omitempty"`
	Sections  []Section `yaml:"sections" validate:"required,min=1,dive"`
	Sidebar   []Group   `yaml:"sidebar,omitempty" validate:"omitempty,dive"`
	Nav       []NavItem `yaml:"nav,omitempty" validate:"omitempty,dive"`
}

// Accent is one selectable accent color.
type Accent struct {
	Name  string `yaml:"name" validate:"required"`
	Color string `yaml:"color" validate:"required,hexcolor"`
}

// Section is an addressable content region.
type Section struct {
	ID     string  `yaml:"id" validate:"required,section_id"`
	Title  string  `yaml:"title" validate:"required"`
	Blocks []Block `yaml:"blocks,omitempty" validate:"omitempty,dive"`
}

// Block is one content block within a section. Exactly the populated
// fields decide its kind: prose text, a copyable snippet, or an inline
// segmented control.
type Block struct {
	Text      string   `yaml:"text,omitempty"`
	Copy      string   `yaml:"copy,omitempty"`
	Segmented []string `yaml:"segmented,omitempty"`
}

// Group is a collapsible sidebar group.
type Group struct {
	Title     string  `yaml:"title" validate:"required"`
	Collapsed bool    `yaml:"collapsed,omitempty"`
	Entries   []Entry `yaml:"entries" validate:"required,min=1,dive"`
}

// Entry is one sidebar link.
type Entry struct {
	Label  string `yaml:"label" validate:"required"`
	Icon   string `yaml:"icon,omitempty"`
	Target string `yaml:"target" validate:"required,section_id"`
}

// NavItem is one bottom-navigation-bar item.
type NavItem struct {
	Label  string `yaml:"label" validate:"required"`
	Target string `yaml:"target" validate:"required,section_id"`
}

// SectionByID returns the section with the given ID.
func (d *Document) SectionByID(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}
