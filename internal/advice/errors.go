package advice

import "errors"

var (
	errEmptyCompletion = errors.New("model returned empty content")
	errBedrockDisabled = errors.New("bedrock model requested but bedrock is not enabled")
)
