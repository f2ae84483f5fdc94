package events

import "strings"

const documentsMarker = "/documents/"

// MatchPath matches a document path such as "users/u1" against a template such as
// "users/{uid}" and returns the captured wildcards.
func MatchPath(template, path string) (map[string]string, bool) {
	tmplParts := strings.Split(strings.Trim(template, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(tmplParts) != len(pathParts) {
		return nil, false
	}

	params := make(map[string]string)
	for i, part := range tmplParts {
		segment := pathParts[i]
		if segment == "" {
			return nil, false
		}
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			params[part[1:len(part)-1]] = segment
			continue
		}
		if part != segment {
			return nil, false
		}
	}
	return params, true
}

// relativeDocumentPath turns a full resource name
// (projects/p/databases/(default)/documents/users/u1) or an event subject
// (documents/users/u1) into a collection-relative path (users/u1).
func relativeDocumentPath(name string) string {
	if idx := strings.Index(name, documentsMarker); idx >= 0 {
		return name[idx+len(documentsMarker):]
	}
	return strings.TrimPrefix(name, "documents/")
}
