package schema

// Version represents each canonical version of the OpenAPI Specification that
// a document can target. See https://github.com/OAI/OpenAPI-Specification/releases
type Version int

const (
	// VersionUnknown represents an unknown or invalid OAS version
	VersionUnknown Version = iota
	// Version20 OpenAPI Specification Version 2.0 (Swagger)
	Version20
	// Version300 OpenAPI Specification Version 3.0.0
	Version300
	// Version301 OpenAPI Specification Version 3.0.1
	Version301
	// Version302 OpenAPI Specification Version 3.0.2
	Version302
	// Version303 OpenAPI Specification Version 3.0.3
	Version303
	// Version304 OpenAPI Specification Version 3.0.4
	Version304
	// Version310 OpenAPI Specification Version 3.1.0
	Version310
	// Version311 OpenAPI Specification Version 3.1.1
	Version311
	// Version312 OpenAPI Specification Version 3.1.2
	Version312
	// Version320 OpenAPI Specification Version 3.2.0
	Version320
)

var (
	versionToString = map[Version]string{
		Version20:  "2.0",
		Version300: "3.0.0",
		Version301: "3.0.1",
		Version302: "3.0.2",
		Version303: "3.0.3",
		Version304: "3.0.4",
		Version310: "3.1.0",
		Version311: "3.1.1",
		Version312: "3.1.2",
		Version320: "3.2.0",
	}

	stringToVersion = func() map[string]Version {
		m := make(map[string]Version, len(versionToString))
		for k, v := range versionToString {
			m[v] = k
		}
		// Accept the common major.minor shorthand for each series.
		m["3.0"] = Version304
		m["3.1"] = Version312
		m["3.2"] = Version320
		return m
	}()
)

// String returns the canonical version string (e.g. "3.1.0"),
// or "unknown" for an unrecognized version.
func (v Version) String() string {
	if s, ok := versionToString[v]; ok {
		return s
	}
	return "unknown"
}

// ParseVersion parses a version string into a Version.
// Accepts full version strings ("3.0.3", "3.1.0") and the major.minor
// shorthand ("3.0", "3.1", "3.2"), which resolves to the latest patch
// release of that series. Returns false for unrecognized strings.
func ParseVersion(s string) (Version, bool) {
	v, ok := stringToVersion[s]
	return v, ok
}

// SupportsTypeArrays reports whether the version encodes nullability with
// JSON Schema type arrays (type: [T, "null"]). True for 3.1.0 and later.
// Versions before 3.1 use the boolean nullable keyword instead.
func (v Version) SupportsTypeArrays() bool {
	return v >= Version310
}

// IsOAS3 reports whether the version belongs to the OAS 3.x family.
func (v Version) IsOAS3() bool {
	return v >= Version300
}
