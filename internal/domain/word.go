package domain

// Word is a single vocabulary entry delivered by the grading service.
// Words are immutable once fetched and are drilled exactly as delivered;
// the service owns their content.
type Word struct {
	ID              int    `json:"id"`
	EnWord          string `json:"en_word"`
	RuWord          string `json:"ru_word"`
	EnTranscription string `json:"en_transcription,omitempty"`
	EnPos           string `json:"en_pos,omitempty"`
}

// Batch is one server-delivered set of words, split into new words to learn
// and known words due for review.
type Batch struct {
	Learn  []Word `json:"learn"`
	Repeat []Word `json:"repeat"`
}

// IsEmpty reports whether the batch holds no words at all.
func (b Batch) IsEmpty() bool {
	return len(b.Learn) == 0 && len(b.Repeat) == 0
}
