package bridge

const (
	StatusSuccess = "success"
	StatusError   = "error"

	// UnknownID marks responses to requests whose body never parsed.
	UnknownID = "unknown"

	TypeChat     = "chat"
	TypeLoadData = "load_data"
)

type FileData struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Request is one record read from the host. Immutable once read.
type Request struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Message  string    `json:"message,omitempty"`
	FileData *FileData `json:"fileData,omitempty"`
}

// Response is the single record written back, produced even on failure.
type Response struct {
	ID        string   `json:"id"`
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	TableData string   `json:"tableData,omitempty"`
	Data      string   `json:"data,omitempty"`
	Charts    []string `json:"charts,omitempty"`
	Error     string   `json:"error,omitempty"`
}

func Success(id, message string) Response {
	return Response{ID: id, Status: StatusSuccess, Message: message}
}

func Failure(id, message string, err error) Response {
	if id == "" {
		id = UnknownID
	}
	resp := Response{ID: id, Status: StatusError, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
