package theme

// Element names the 28 visual items a theme may style (SPEC_FULL §3 "v0
// theme: optional elements map (28 named elements)"). Several come in
// parent/inner pairs rendered as nested styling scopes (§4.8): if the
// inner is absent, the parent's styling continues because the renderer
// is lexically inside it.
type Element string

const (
	ElementInputNumber      Element = "input-number"
	ElementInputNumberInner Element = "input-number-inner"
	ElementInputName        Element = "input-name"
	ElementInputNameInner   Element = "input-name-inner"
	ElementLevel            Element = "level"
	ElementLevelInner       Element = "level-inner"
	ElementLogger           Element = "logger"
	ElementLoggerInner      Element = "logger-inner"
	ElementCaller           Element = "caller"
	ElementCallerInner      Element = "caller-inner"
	ElementTime             Element = "time"
	ElementMessage          Element = "message"
	ElementFieldKey         Element = "field-key"
	ElementFieldValue       Element = "field-value"
	ElementString           Element = "string"
	ElementNumber           Element = "number"
	ElementBoolean          Element = "boolean"
	ElementBooleanTrue      Element = "boolean-true"
	ElementBooleanFalse     Element = "boolean-false"
	ElementNull             Element = "null"
	ElementArray            Element = "array"
	ElementObject           Element = "object"
	ElementPunctuation      Element = "punctuation"
	ElementComma            Element = "comma"
	ElementQuote            Element = "quote"
	ElementEllipsis         Element = "ellipsis"
	ElementIndicatorSync    Element = "indicator-sync"
	ElementIndicatorAsync   Element = "indicator-async"
)

// Elements lists all 28 element names.
var Elements = []Element{
	ElementInputNumber, ElementInputNumberInner,
	ElementInputName, ElementInputNameInner,
	ElementLevel, ElementLevelInner,
	ElementLogger, ElementLoggerInner,
	ElementCaller, ElementCallerInner,
	ElementTime, ElementMessage,
	ElementFieldKey, ElementFieldValue,
	ElementString, ElementNumber,
	ElementBoolean, ElementBooleanTrue, ElementBooleanFalse,
	ElementNull, ElementArray, ElementObject,
	ElementPunctuation, ElementComma, ElementQuote, ElementEllipsis,
	ElementIndicatorSync, ElementIndicatorAsync,
}

// nestedScopePairs lists the parent/inner element pairs SPEC_FULL §4.8
// names explicitly.
var nestedScopePairs = map[Element]Element{
	ElementInputNumber: ElementInputNumberInner,
	ElementInputName:   ElementInputNameInner,
	ElementLevel:       ElementLevelInner,
	ElementLogger:      ElementLoggerInner,
	ElementCaller:      ElementCallerInner,
}

func isKnownElement(e Element) bool {
	for _, x := range Elements {
		if x == e {
			return true
		}
	}

	return false
}
