package dto

// SpeakRequest is the body of POST /speak.
type SpeakRequest struct {
	Text string `json:"text"`
}

// SpeakResponse points the caller to the generated waveform file.
type SpeakResponse struct {
	AudioPath string `json:"audioPath"`
}
