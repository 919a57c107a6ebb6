package domain

// LanguageID identifies a supported programming language. The set is
// closed; adding a language is a table change in SupportedLanguages.
type LanguageID string

const (
	LanguagePython     LanguageID = "python"
	LanguageJava       LanguageID = "java"
	LanguageCpp        LanguageID = "cpp"
	LanguageJavaScript LanguageID = "javascript"
	LanguageC          LanguageID = "c"
)

// LanguageConfig maps a language to the remote execution service's
// executor id plus editor metadata. Read-only to all other components.
type LanguageConfig struct {
	ExecutorID  int
	DisplayName string
	Extension   string
	Template    string
}

var supportedLanguages = map[LanguageID]LanguageConfig{
	LanguagePython: {
		ExecutorID:  71,
		DisplayName: "Python 3",
		Extension:   "py",
		Template:    "# Write your Python code here\nprint('Hello, World!')",
	},
	LanguageJava: {
		ExecutorID:  62,
		DisplayName: "Java",
		Extension:   "java",
		Template:    "public class Main {\n    public static void main(String[] args) {\n        System.out.println(\"Hello, World!\");\n    }\n}",
	},
	LanguageCpp: {
		ExecutorID:  76,
		DisplayName: "C++",
		Extension:   "cpp",
		Template:    "#include <iostream>\nusing namespace std;\n\nint main() {\n    cout << \"Hello, World!\" << endl;\n    return 0;\n}",
	},
	LanguageJavaScript: {
		ExecutorID:  63,
		DisplayName: "JavaScript",
		Extension:   "js",
		Template:    "// Write your JavaScript code here\nconsole.log('Hello, World!');",
	},
	LanguageC: {
		ExecutorID:  75,
		DisplayName: "C",
		Extension:   "c",
		Template:    "#include <stdio.h>\n\nint main() {\n    printf(\"Hello, World!\\n\");\n    return 0;\n}",
	},
}

// DefaultLanguage is used when a project is created without an explicit
// language choice.
const DefaultLanguage = LanguagePython

// GetLanguageConfig returns the configuration for a language and whether
// the language is supported.
func GetLanguageConfig(id LanguageID) (LanguageConfig, bool) {
	cfg, ok := supportedLanguages[id]
	return cfg, ok
}

// SupportedLanguages returns a copy of the language table.
func SupportedLanguages() map[LanguageID]LanguageConfig {
	out := make(map[LanguageID]LanguageConfig, len(supportedLanguages))
	for id, cfg := range supportedLanguages {
		out[id] = cfg
	}
	return out
}
