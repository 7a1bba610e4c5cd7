package validator

import (
	"context"
	"encoding/json"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

var (
	// E.164: optional plus, up to 15 digits, no leading zero.
	phoneRegex        = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaRegex        = regexp.MustCompile(`^[a-zA-Z]+$`)
	numericRegex      = regexp.MustCompile(`^[0-9]+$`)
	slugRegex         = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	hexColorRegex     = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// stringCheck adapts a test on strings into a Predicate. Empty values pass;
// non-string values fail with code.
func stringCheck(code, message string, ok func(string) bool) Predicate {
	return func(_ context.Context, value any, _ FieldContext) Outcome {
		if IsEmpty(value) {
			return Pass()
		}
		s, isString := AsString(value)
		if !isString || !ok(s) {
			return Fail(code, message)
		}
		return Pass()
	}
}

func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, found := strings.Cut(value, "@")
	if !found || local == "" {
		return false
	}

	// Domain must contain at least one dot and cannot start/end with dot
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func isURL(value string) bool {
	u, err := url.ParseRequestURI(value)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func isPhone(value string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(value)
	return len(cleaned) >= 7 && phoneRegex.MatchString(cleaned)
}

// isCreditCard applies the Luhn checksum to 13 to 19 digits.
func isCreditCard(value string) bool {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(value, " ", ""), "-", "")
	if len(cleaned) < 13 || len(cleaned) > 19 || !numericRegex.MatchString(cleaned) {
		return false
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

var (
	emailPredicate        = stringCheck(CodeInvalidEmail, "must be a valid email address", isEmail)
	urlPredicate          = stringCheck(CodeInvalidURL, "must be a valid URL", isURL)
	phonePredicate        = stringCheck(CodeInvalidPhone, "must be a valid phone number in international format", isPhone)
	ipPredicate           = stringCheck(CodeInvalidIP, "must be a valid IP address", func(s string) bool { return net.ParseIP(s) != nil })
	hexColorPredicate     = stringCheck(CodeInvalidHexColor, "must be a valid hex color", hexColorRegex.MatchString)
	slugPredicate         = stringCheck(CodeInvalidSlug, "must be a valid slug", slugRegex.MatchString)
	creditCardPredicate   = stringCheck(CodeInvalidCreditCard, "invalid credit card number", isCreditCard)
	jsonPredicate         = stringCheck(CodeInvalidJSON, "must be valid JSON", func(s string) bool { return json.Valid([]byte(s)) })
	alphaPredicate        = stringCheck(CodeInvalidFormat, "must contain only letters", alphaRegex.MatchString)
	alphanumericPredicate = stringCheck(CodeInvalidFormat, "must contain only letters and numbers", alphanumericRegex.MatchString)
	numericPredicate      = stringCheck(CodeInvalidFormat, "must contain only digits", numericRegex.MatchString)
	lowercasePredicate    = stringCheck(CodeInvalidFormat, "must be lowercase", func(s string) bool { return strings.ToLower(s) == s })
	uppercasePredicate    = stringCheck(CodeInvalidFormat, "must be uppercase", func(s string) bool { return strings.ToUpper(s) == s })
)

func datePredicate(_ context.Context, value any, _ FieldContext) Outcome {
	if IsEmpty(value) {
		return Pass()
	}
	if _, ok := AsTime(value); !ok {
		return Fail(CodeInvalidDate, "must be a valid date")
	}
	return Pass()
}

// Email validates an address with net/mail plus the usual web constraints
// (single @, dotted domain without empty labels).
func Email() Rule { return Rule{Name: "email", Check: emailPredicate} }

// URL requires an absolute URL with scheme and host.
func URL() Rule { return Rule{Name: "url", Check: urlPredicate} }

// Phone accepts E.164 numbers; spaces, dashes and parentheses are ignored.
func Phone() Rule { return Rule{Name: "phone", Check: phonePredicate} }

func IP() Rule { return Rule{Name: "ip", Check: ipPredicate} }

func HexColor() Rule { return Rule{Name: "hexcolor", Check: hexColorPredicate} }

func Slug() Rule { return Rule{Name: "slug", Check: slugPredicate} }

func CreditCard() Rule { return Rule{Name: "creditcard", Check: creditCardPredicate} }

func JSON() Rule { return Rule{Name: "json", Check: jsonPredicate} }

// Date accepts time.Time values and RFC 3339 or ISO date strings.
func Date() Rule { return Rule{Name: "date", Check: datePredicate} }
