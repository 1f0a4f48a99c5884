package ipc

import "encoding/json"

// MaxRequestBytes bounds the single read the server performs per
// connection. A request whose encoding fills the whole buffer is
// rejected with a protocol error rather than reassembled.
const MaxRequestBytes = 4096

// Request asks the daemon to transcribe one audio file.
type Request struct {
	AudioPath string `json:"audio_path"`
}

// Response is the tagged union written back on every connection:
// {"success":true,"text":...} or {"success":false,"error":...}.
type Response struct {
	Success bool
	Text    string
	Error   string
}

// Successful builds the success arm, which always carries a text field
// even when the transcript is empty.
func Successful(text string) Response {
	return Response{Success: true, Text: text}
}

// Failed builds the failure arm.
func Failed(message string) Response {
	return Response{Success: false, Error: message}
}

type successWire struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

type failureWire struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MarshalJSON emits only the fields of the active arm so failure
// responses match the wire contract byte for byte.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(successWire{Success: true, Text: r.Text})
	}
	return json.Marshal(failureWire{Success: false, Error: r.Error})
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var wire struct {
		Success bool   `json:"success"`
		Text    string `json:"text"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.Success = wire.Success
	r.Text = wire.Text
	r.Error = wire.Error
	return nil
}
