package api

// gjson paths into the generateContent response
const (
	PathCandidates   = "candidates"
	PathCandParts    = "content.parts"
	PathPartText     = "text"
	PathFinishReason = "finishReason"
	PathErrorMessage = "error.message"
	PathBlockReason  = "promptFeedback.blockReason"
)
