package domain

import (
	"sort"
	"time"
)

// FileRecord is a single source file in a subject's project. Filenames
// are unique, case-sensitive keys within a project.
type FileRecord struct {
	Name       string     `json:"name"`
	Content    string     `json:"content"`
	Language   LanguageID `json:"language"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt time.Time  `json:"modified_at"`
}

// Project is the per-subject aggregate of files plus the active-file and
// language pointers. A project always holds at least one file, and
// ActiveFile always names an existing file.
type Project struct {
	SubjectID  string                 `json:"subject_id"`
	Files      map[string]*FileRecord `json:"files"`
	ActiveFile string                 `json:"active_file"`
	Language   LanguageID             `json:"language"`
}

// NewProject seeds a project with a main file from the language's starter
// template.
func NewProject(subjectID string, lang LanguageID) *Project {
	cfg, ok := GetLanguageConfig(lang)
	if !ok {
		lang = DefaultLanguage
		cfg, _ = GetLanguageConfig(lang)
	}

	name := "main." + cfg.Extension
	now := time.Now().UTC()
	return &Project{
		SubjectID: subjectID,
		Files: map[string]*FileRecord{
			name: {
				Name:       name,
				Content:    cfg.Template,
				Language:   lang,
				CreatedAt:  now,
				ModifiedAt: now,
			},
		},
		ActiveFile: name,
		Language:   lang,
	}
}

// FileNames returns the project's filenames in sorted order.
func (p *Project) FileNames() []string {
	names := make([]string, 0, len(p.Files))
	for name := range p.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Active returns the active file record, or nil if the pointer is stale.
func (p *Project) Active() *FileRecord {
	return p.Files[p.ActiveFile]
}
