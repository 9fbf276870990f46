// Package rules infers partial schemas from declarative validation-rule
// strings.
//
// A rule string like "required|string|email|max:255" carries real shape
// information: the field is a string, formatted as an email, at most 255
// characters, and required. This analyzer turns that into a rule-tier
// fragment for the merge resolver. Rules it does not recognize are skipped;
// rule inference sits at one of the lowest precedence tiers and must never
// abort a build.
package rules
