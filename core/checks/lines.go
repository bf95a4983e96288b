package checks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/brightops/prove/schema"
)

// lineHit is the working-tree text of one changed line.
type lineHit struct {
	File string
	Line int
	Text string
}

// changedLineText reads the current content of every added or modified
// changed line from the working tree, one file read per touched file.
// Files that vanished since the diff (e.g. renamed mid-edit) are skipped
// rather than failing the check that scans them.
func changedLineText(rc *schema.Context) []lineHit {
	byFile := make(map[string][]int)
	for _, cl := range rc.ChangedLines {
		if cl.Type == schema.DeletedChange {
			continue
		}
		byFile[cl.File] = append(byFile[cl.File], cl.Line)
	}

	var hits []lineHit
	for file, lineNums := range byFile {
		payload, err := os.ReadFile(filepath.Join(rc.RepoPath, file))
		if err != nil {
			continue
		}
		lines := strings.Split(string(payload), "\n")
		for _, n := range lineNums {
			if n < 1 || n > len(lines) {
				continue
			}
			hits = append(hits, lineHit{File: file, Line: n, Text: lines[n-1]})
		}
	}
	return hits
}
