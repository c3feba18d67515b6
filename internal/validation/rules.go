package validation

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/job-application-form/internal/types"
)

// Validator tags used by the field rules. required is built in: it fails
// only on the empty string. required_text also rejects whitespace-only text.
const (
	tagRequired     = "required"
	tagRequiredText = "required_text"
	tagEmailShape   = "email_shape"
	tagJSNumber     = "js_number"
	tagPositive     = "positive"
	tagPortfolioURL = "portfolio_url"
	tagAnySkill     = "any_skill"
)

var (
	emailPattern        = regexp.MustCompile(`\S+@\S+\.\S+`)
	portfolioURLPattern = regexp.MustCompile(`^https?://\S+\.\S+`)
)

// tagKinds maps a failing validator tag to the error kind it reports.
var tagKinds = map[string]types.ErrorKind{
	tagRequired:     types.ErrorRequired,
	tagRequiredText: types.ErrorRequired,
	tagEmailShape:   types.ErrorFormatInvalid,
	tagJSNumber:     types.ErrorNotNumeric,
	tagPositive:     types.ErrorOutOfRange,
	tagPortfolioURL: types.ErrorFormatInvalid,
	tagAnySkill:     types.ErrorNoneSelected,
}

// rule is the validator tag chain for one field plus the message reported
// for each kind of failure. Tags are checked left to right and the first
// failing tag decides the error.
type rule struct {
	tags     string
	messages map[types.ErrorKind]string
}

func sameMessage(msg string, kinds ...types.ErrorKind) map[types.ErrorKind]string {
	m := make(map[types.ErrorKind]string, len(kinds))
	for _, k := range kinds {
		m[k] = msg
	}
	return m
}

// fieldRules holds the rule of every field that has one. position is
// always active but has no rule of its own.
var fieldRules = map[types.FieldName]rule{
	types.FieldFullName: {
		tags:     tagRequiredText,
		messages: sameMessage("Full Name is required", types.ErrorRequired),
	},
	types.FieldEmail: {
		tags: tagRequired + "," + tagEmailShape,
		messages: map[types.ErrorKind]string{
			types.ErrorRequired:      "Email is required",
			types.ErrorFormatInvalid: "Email address is invalid",
		},
	},
	types.FieldPhoneNumber: {
		tags: tagRequired + "," + tagJSNumber,
		messages: map[types.ErrorKind]string{
			types.ErrorRequired:   "Phone Number is required",
			types.ErrorNotNumeric: "Phone Number must be a valid number",
		},
	},
	types.FieldRelevantExperience: {
		tags: tagRequired + "," + tagJSNumber + "," + tagPositive,
		messages: sameMessage("Relevant Experience is required and must be a number greater than 0",
			types.ErrorRequired, types.ErrorNotNumeric, types.ErrorOutOfRange),
	},
	types.FieldPortfolioURL: {
		tags: tagRequired + "," + tagPortfolioURL,
		messages: sameMessage("Portfolio URL is required and must be a valid URL",
			types.ErrorRequired, types.ErrorFormatInvalid),
	},
	types.FieldManagementExperience: {
		tags:     tagRequired,
		messages: sameMessage("Management Experience is required", types.ErrorRequired),
	},
	types.FieldSkills: {
		tags:     tagAnySkill,
		messages: sameMessage("At least one skill must be selected", types.ErrorNoneSelected),
	},
	types.FieldPreferredInterviewTime: {
		tags:     tagRequired,
		messages: sameMessage("Preferred Interview Time is required", types.ErrorRequired),
	},
}

// registerRules installs the custom tags on v.
func registerRules(v *validator.Validate) error {
	custom := map[string]validator.Func{
		tagRequiredText: requiredText,
		tagEmailShape:   matches(emailPattern),
		tagJSNumber:     jsNumber,
		tagPositive:     positive,
		tagPortfolioURL: matches(portfolioURLPattern),
		tagAnySkill:     anySkill,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return &Error{Message: "failed to register rule " + tag, Cause: err}
		}
	}
	return nil
}

func requiredText(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func jsNumber(fl validator.FieldLevel) bool {
	_, ok := ParseNumber(fl.Field().String())
	return ok
}

func positive(fl validator.FieldLevel) bool {
	n, ok := ParseNumber(fl.Field().String())
	return ok && n > 0
}

func anySkill(fl validator.FieldLevel) bool {
	skills, ok := fl.Field().Interface().(types.SkillSet)
	return ok && skills.Any()
}

// isNumberSpace reports the characters stripped around numeric text. The
// byte order mark counts as whitespace there although unicode does not
// class it as a space.
func isNumberSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// ParseNumber converts form text to a number the way a browser coerces a
// text input value: surrounding whitespace is ignored, empty text is zero,
// decimal and exponent notation, 0x/0o/0b integers and signed Infinity are
// accepted. ok is false when the text is not a number.
func ParseNumber(s string) (n float64, ok bool) {
	s = strings.TrimFunc(s, isNumberSpace)
	switch s {
	case "":
		return 0, true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			u, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return 0, false
			}
			return float64(u), true
		}
	}

	// strconv also accepts "inf", "nan", hex floats and underscores
	for _, r := range s {
		if !strings.ContainsRune("0123456789.eE+-", r) {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}
