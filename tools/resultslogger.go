package tools

// Tool identifies one of the operations offered by the service.
type Tool string

// Tools available.
const (
	ToolURLEncode    Tool = "url-encode"
	ToolURLDecode    Tool = "url-decode"
	ToolRegexpCheck  Tool = "regexp-check"
	ToolDateTimeDiff Tool = "datetime-diff"
	ToolDateTimeCalc Tool = "datetime-calc"
)

// ResultsLogger is where the outcome of each tool invocation is reported.
type ResultsLogger interface {
	ToolSucceeded(txid string, tool Tool, details string)
	ToolFailed(txid string, tool Tool, err error)
	FieldBytesLimitExceeded(txid string, tool Tool, limit int)
	PausableBytesLimitExceeded(txid string, tool Tool, limit int)
	TotalBytesLimitExceeded(txid string, tool Tool, limit int)
	BodyParseError(txid string, tool Tool, err error)
}
