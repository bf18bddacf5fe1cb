package messages

var english = map[string]string{
	FieldIsRequired: "This field is required!",
	InvalidFormat:   "Invalid format!",

	NumberTooSmall: "The number is too small! Minimum: {0}",
	NumberTooBig:   "The number is too big! Maximum: {0}",
	InvalidNumber:  "Invalid number",

	TextTooSmall: "The length of text is too small! Current: {0}, Minimum: {1}",
	TextTooBig:   "The length of text is too big! Current: {0}, Maximum: {1}",
	ThisNotText:  "This is not a text!",

	ThisNotArray: "This is not a list!",

	SelectMinItems: "Select minimum {0} items!",
	SelectMaxItems: "Select maximum {0} items!",

	InvalidDate: "Invalid date!",
	DateIsEarly: "The date is too early! Current: {0}, Minimum: {1}",
	DateIsLate:  "The date is too late! Current: {0}, Maximum: {1}",

	InvalidEmail: "Invalid e-mail address!",
	InvalidURL:   "Invalid URL!",

	InvalidCard:       "Invalid card format!",
	InvalidCardNumber: "Invalid card number!",

	InvalidTextContainNumber: "Invalid text! Cannot contains numbers or special characters",
	InvalidTextContainSpec:   "Invalid text! Cannot contains special characters",
}
