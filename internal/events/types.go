package events

// Topic identifies a class of events.
type Topic string

const (
	TopicSearchStarted      Topic = "search.started"
	TopicSearchCompleted    Topic = "search.completed"
	TopicSearchFailed       Topic = "search.failed"
	TopicReplaceCompleted   Topic = "replace.completed"
	TopicWorkspaceChanged   Topic = "workspace.changed"
	TopicCurrentFileChanged Topic = "workspace.current_file"
	TopicDirectoryChanged   Topic = "explorer.directory_changed"
)

// Event is anything published on the bus.
type Event interface {
	Topic() Topic
}

type SearchStarted struct {
	Query string
}

func (SearchStarted) Topic() Topic { return TopicSearchStarted }

type SearchCompleted struct {
	Query     string
	Matches   int
	Files     int
	Truncated bool
}

func (SearchCompleted) Topic() Topic { return TopicSearchCompleted }

type SearchFailed struct {
	Query string
	Err   error
}

func (SearchFailed) Topic() Topic { return TopicSearchFailed }

type ReplaceCompleted struct {
	Query    string
	Replaced int
	Files    int
	Failed   int
}

func (ReplaceCompleted) Topic() Topic { return TopicReplaceCompleted }

type WorkspaceChanged struct {
	ActiveID string
}

func (WorkspaceChanged) Topic() Topic { return TopicWorkspaceChanged }

type CurrentFileChanged struct {
	WorkspaceID string
	Path        string
	Line        int
	Column      int
}

func (CurrentFileChanged) Topic() Topic { return TopicCurrentFileChanged }

type DirectoryChanged struct {
	Dir   string
	Names []string
}

func (DirectoryChanged) Topic() Topic { return TopicDirectoryChanged }
