package event

// Payload is the data of an event. The set of payloads is closed: CommitData,
// ActionData and IdentityData
type Payload interface {
	payload()
}

// Payload fields are declared in json key order, upper case before lower case.

// FileChange is one entry of a commit's file list, as reported by the collector
type FileChange struct {
	Action  string   `json:"action"`
	Added   string   `json:"added"`
	File    string   `json:"file"`
	Indexes []string `json:"indexes,omitempty"`
	Modes   []string `json:"modes,omitempty"`
	NewFile *string  `json:"newfile,omitempty"`
	Removed string   `json:"removed"`
}

// CommitData is the payload of commit and merge events: the commit as collected
type CommitData struct {
	Author       string       `json:"Author"`
	AuthorDate   string       `json:"AuthorDate"`
	CoAuthoredBy []string     `json:"Co-authored-by,omitempty"`
	Committer    string       `json:"Commit"`
	CommitDate   string       `json:"CommitDate"`
	Merge        string       `json:"Merge,omitempty"`
	SignedOffBy  []string     `json:"Signed-off-by,omitempty"`
	Hash         string       `json:"commit"`
	Files        []FileChange `json:"files"`
	Message      string       `json:"message"`
	Parents      []string     `json:"parents"`
	Refs         []string     `json:"refs"`
}

// ActionData is the payload of file action events.
// Line counts stay strings: binary files report "-"
type ActionData struct {
	AddedLines   string  `json:"added_lines"`
	DeletedLines string  `json:"deleted_lines"`
	Filename     string  `json:"filename"`
	NewFilename  *string `json:"new_filename,omitempty"`
}

// IdentityData is the payload of identity events. Absent fields render as null
type IdentityData struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Role     Role    `json:"role"`
	Source   string  `json:"source"`
	Username *string `json:"username"`
	UUID     string  `json:"uuid"`
}

func (CommitData) payload()   {}
func (ActionData) payload()   {}
func (IdentityData) payload() {}
