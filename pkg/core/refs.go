package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ExtractReferences scans content for reference tokens of the form [[id]]
// and returns the distinct ids in first-seen order. A token only counts when
// it stands alone between whitespace and the bracketed text parses as a
// note id.
func ExtractReferences(content string) []NoteID {
	var ids []NoteID
	seen := make(map[NoteID]struct{})

	for _, tok := range strings.Fields(content) {
		if !strings.HasPrefix(tok, "[[") || !strings.HasSuffix(tok, "]]") {
			continue
		}
		n, err := strconv.ParseUint(tok[2:len(tok)-2], 10, 16)
		if err != nil {
			continue
		}
		id := NoteID(n)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids
}

// ExpandReferences rewrites content, replacing every literal occurrence of
// [[id]] with a quoted rendering of the referenced note obtained from
// resolve. Any resolve error aborts the expansion.
//
// Expansion is a single pass and never recurses: replacement text is not
// re-scanned, so a referenced note's own [[...]] tokens come through
// verbatim. This is the boundary against unbounded or cyclic expansion.
func ExpandReferences(content string, resolve func(NoteID) (Note, error)) (string, error) {
	expanded := content

	for _, id := range ExtractReferences(content) {
		ref, err := resolve(id)
		if err != nil {
			return "", err
		}

		placeholder := fmt.Sprintf("[[%d]]", id)
		quoted := fmt.Sprintf(">>> #%d %s\n>\n> %s",
			ref.ID, ref.Name, strings.ReplaceAll(ref.Content, "\n", "\n> "))
		expanded = strings.ReplaceAll(expanded, placeholder, quoted)
	}

	return expanded, nil
}
