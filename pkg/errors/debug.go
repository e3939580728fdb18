package errors

// ErrorDump flattens an error chain for structured logging.
type ErrorDump struct {
	Code       string
	TopMessage string
	Chain      []string
}

// Dump walks the wrapped chain and collects every message along the way.
func Dump(err error) ErrorDump {
	dump := ErrorDump{}
	if err == nil {
		return dump
	}

	dump.TopMessage = err.Error()
	if typed := As(err); typed != nil {
		dump.Code = string(typed.Code())
	}

	for current := err; current != nil; {
		dump.Chain = append(dump.Chain, current.Error())
		unwrapper, ok := current.(interface{ Unwrap() error })
		if !ok {
			break
		}
		current = unwrapper.Unwrap()
	}
	return dump
}
