package tools

// URLCodec percent-encodes and decodes text using its UTF-8 byte representation.
type URLCodec interface {
	Encode(text string) string
	Decode(text string) (string, error)
}

// DateCalculator does calendar arithmetic on ISO local date-times, such as "2023-12-25T12:30:00".
type DateCalculator interface {
	// DiffSeconds returns the absolute number of whole seconds elapsed between the two date-times.
	DiffSeconds(dateTime1 string, dateTime2 string) (int64, error)

	// Offset adds, or if subtract is set subtracts, the hours, minutes and seconds of the local time addTime (such as "01:30:00") to baseDateTime.
	Offset(baseDateTime string, addTime string, subtract bool) (string, error)
}
