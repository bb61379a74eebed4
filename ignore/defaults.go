package ignore

// Built-in skip rules, grouped by what they cover. Everything here is merged
// into defaultPatterns at init and applies before any ignore file is consulted.
var (
	// Artifacts this tool writes itself. Summarizing our own output would
	// feed stale signatures back into the next scan.
	artifactPatterns = []string{
		"*.tldr",
		"tldr.json",
		"*.tldr.json",
		"tldr-code.log",
	}

	// Trees that never hold first-party declarations.
	dependencyTreePatterns = []string{
		"node_modules",
		"vendor",
		"bower_components",
		".npm",
		".yarn",
		".pnp.*",
		".venv",
		"venv",
	}

	// Build and coverage output.
	buildOutputPatterns = []string{
		"dist",
		"build",
		"out",
		"target",
		"bin",
		"obj",
		"coverage",
		".nyc_output",
		"htmlcov",
	}

	// Editor, VCS, and cache directories plus their droppings.
	toolingPatterns = []string{
		".git",
		".svn",
		".hg",
		".idea",
		".vscode",
		".vs",
		".cache",
		".parcel-cache",
		".next",
		".nuxt",
		"__pycache__",
		".env",
		"*.swp",
		"*.swo",
		"*~",
		".DS_Store",
		"Thumbs.db",
		"desktop.ini",
	}

	// Compiled objects and archives. The binary sniffer would reject most of
	// these anyway, matching by extension avoids opening them at all.
	compiledPatterns = []string{
		"*.pyc",
		"*.pyo",
		"*.exe",
		"*.dll",
		"*.so",
		"*.dylib",
		"*.o",
		"*.a",
		"*.lib",
		"*.class",
		"*.jar",
		"*.war",
		"*.zip",
		"*.tar",
		"*.tar.gz",
		"*.tgz",
		"*.rar",
		"*.7z",
	}

	// Media, fonts, and office documents.
	assetPatterns = []string{
		"*.png",
		"*.jpg",
		"*.jpeg",
		"*.gif",
		"*.bmp",
		"*.ico",
		"*.webp",
		"*.tiff",
		"*.woff",
		"*.woff2",
		"*.ttf",
		"*.eot",
		"*.otf",
		"*.mp3",
		"*.mp4",
		"*.avi",
		"*.mov",
		"*.wav",
		"*.flac",
		"*.pdf",
		"*.doc",
		"*.docx",
		"*.xls",
		"*.xlsx",
		"*.ppt",
		"*.pptx",
	}

	// Generated or machine-managed files with no signatures worth reading.
	generatedPatterns = []string{
		"*.min.js",
		"*.min.css",
		"*.map",
		"package-lock.json",
		"yarn.lock",
		"pnpm-lock.yaml",
		"Gemfile.lock",
		"poetry.lock",
		"Cargo.lock",
		"go.sum",
		"composer.lock",
		"*.log",
		"*.sqlite",
		"*.sqlite3",
		"*.db",
	}
)

// defaultPatterns is the flattened rule list the matcher compiles at startup.
var defaultPatterns = flatten(
	artifactPatterns,
	dependencyTreePatterns,
	buildOutputPatterns,
	toolingPatterns,
	compiledPatterns,
	assetPatterns,
	generatedPatterns,
)

// prunedDirNames are directory basenames the walker drops without consulting
// ignore files or taking the matcher lock.
var prunedDirNames = map[string]struct{}{
	".git":          {},
	".svn":          {},
	".hg":           {},
	"node_modules":  {},
	"__pycache__":   {},
	".idea":         {},
	".vscode":       {},
	".vs":           {},
	".next":         {},
	".nuxt":         {},
	".cache":        {},
	".parcel-cache": {},
	"coverage":      {},
	".nyc_output":   {},
	"htmlcov":       {},
	".venv":         {},
	"venv":          {},
	".env":          {},
}

func flatten(groups ...[]string) []string {
	var all []string
	for _, group := range groups {
		all = append(all, group...)
	}
	return all
}
