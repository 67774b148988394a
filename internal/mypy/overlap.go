// Package mypy holds the fixed set of pylint rules whose semantics duplicate
// mypy's type checking. The set is independent of the ruff implementation
// status and is applied as a whole when overlap filtering is enabled.
package mypy

// overlapCodes lists pylint rule codes covered by mypy's static type
// checking. Rules in this set are dropped from the enable list unless the
// user explicitly asks for them.
var overlapCodes = map[string]struct{}{
	// typecheck checker
	"E1101": {}, // no-member
	"E1102": {}, // not-callable
	"E1111": {}, // assignment-from-no-return
	"E1120": {}, // no-value-for-parameter
	"E1121": {}, // too-many-function-args
	"E1123": {}, // unexpected-keyword-arg
	"E1124": {}, // redundant-keyword-arg
	"E1125": {}, // missing-kwoa
	"E1126": {}, // invalid-sequence-index
	"E1127": {}, // invalid-slice-index
	"E1128": {}, // assignment-from-none
	"E1129": {}, // not-context-manager
	"E1130": {}, // invalid-unary-operand-type
	"E1131": {}, // unsupported-binary-operation
	"E1132": {}, // repeated-keyword
	"E1133": {}, // not-an-iterable
	"E1134": {}, // not-a-mapping
	"E1135": {}, // unsupported-membership-test
	"E1136": {}, // unsubscriptable-object
	"E1137": {}, // unsupported-assignment-operation
	"E1138": {}, // unsupported-delete-operation
	"E1139": {}, // invalid-metaclass
	"E1141": {}, // dict-iter-missing-items
	"E1142": {}, // await-outside-async
	"E1143": {}, // unhashable-member
	"E1144": {}, // invalid-slice-step

	// variables checker
	"E0601": {}, // used-before-assignment
	"E0602": {}, // undefined-variable
	"E0603": {}, // undefined-all-variable
	"E0604": {}, // invalid-all-object
	"E0605": {}, // invalid-all-format
	"E0606": {}, // possibly-used-before-assignment
	"E0611": {}, // no-name-in-module
	"E0633": {}, // unpacking-non-sequence
	"W0631": {}, // undefined-loop-variable
	"W0632": {}, // unbalanced-tuple-unpacking
	"W0644": {}, // unbalanced-dict-unpacking

	// classes checker
	"E0110": {}, // abstract-class-instantiated
	"E0202": {}, // method-hidden
	"E0203": {}, // access-member-before-definition
	"E0237": {}, // assigning-non-slot
	"E0238": {}, // invalid-slots
	"E0239": {}, // inherit-non-class
	"E0240": {}, // inconsistent-mro
	"E0241": {}, // duplicate-bases
	"E0243": {}, // invalid-class-object
	"E0244": {}, // invalid-enum-extension
	"E0304": {}, // invalid-bool-returned
	"E0305": {}, // invalid-index-returned
	"E0306": {}, // invalid-repr-returned
	"E0307": {}, // invalid-str-returned
	"E0308": {}, // invalid-bytes-returned
	"E0309": {}, // invalid-hash-returned
	"E0310": {}, // invalid-length-hint-returned
	"E0311": {}, // invalid-format-returned
	"E0312": {}, // invalid-getnewargs-returned
	"E0313": {}, // invalid-getnewargs-ex-returned
	"E1003": {}, // bad-super-call
	"W0221": {}, // arguments-differ
	"W0222": {}, // signature-differs
	"W0236": {}, // invalid-overridden-method
	"W0239": {}, // overridden-final-method
	"W0240": {}, // subclassed-final-class
	"W0244": {}, // redefined-slots-in-subclass

	// basic / misc overlaps
	"E0102": {}, // function-redefined
	"E0118": {}, // used-prior-global-declaration

	// string / format checks subsumed by typed format handling
	"E1300": {}, // bad-format-character
	"E1301": {}, // truncated-format-string
	"E1302": {}, // mixed-format-string
	"E1303": {}, // format-needs-mapping
	"E1304": {}, // missing-format-string-key
	"E1305": {}, // too-many-format-args
	"E1306": {}, // too-few-format-args
	"E1307": {}, // bad-string-format-type

	// misc warnings mypy reports as type errors
	"W0143": {}, // comparison-with-callable
	"W1113": {}, // keyword-arg-before-vararg
	"W1114": {}, // arguments-out-of-order
}

// Overlaps reports whether the rule code duplicates mypy semantics.
func Overlaps(code string) bool {
	_, ok := overlapCodes[code]
	return ok
}

// OverlapCodes returns a copy of the overlap set.
func OverlapCodes() map[string]struct{} {
	out := make(map[string]struct{}, len(overlapCodes))
	for code := range overlapCodes {
		out[code] = struct{}{}
	}
	return out
}
