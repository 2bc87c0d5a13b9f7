package qblast

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// The QBlast service embeds request metadata in HTML comments:
//
//	<!--QBlastInfoBegin
//	    RID = ABC123XYZ
//	    RTOE = 25
//	QBlastInfoEnd-->
//
// Status polls use the same block with Status=WAITING|READY|UNKNOWN
// and ThereAreHits=yes lines.

var qblastLineRe = regexp.MustCompile(`(?m)^\s*([A-Za-z]+)\s*=\s*(.*\S)\s*$`)

// QBlastInfo holds the fields parsed from a QBlastInfoBegin block
type QBlastInfo struct {
	RID          string
	RTOE         int
	Status       string
	ThereAreHits bool
}

// ParseQBlastInfo extracts the QBlastInfoBegin block from an HTML page
func ParseQBlastInfo(page string) (*QBlastInfo, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	block := findInfoComment(doc)
	if block == "" {
		return nil, fmt.Errorf("no QBlastInfo block in response")
	}

	info := &QBlastInfo{}
	for _, m := range qblastLineRe.FindAllStringSubmatch(block, -1) {
		key, value := m[1], m[2]
		switch key {
		case "RID":
			info.RID = value
		case "RTOE":
			rtoe, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("parse RTOE %q: %w", value, err)
			}
			info.RTOE = rtoe
		case "Status":
			info.Status = value
		case "ThereAreHits":
			info.ThereAreHits = strings.EqualFold(value, "yes")
		}
	}

	return info, nil
}

// findInfoComment walks the document for the comment node carrying the block
func findInfoComment(n *html.Node) string {
	if n.Type == html.CommentNode && strings.Contains(n.Data, "QBlastInfoBegin") {
		return between(n.Data, "QBlastInfoBegin", "QBlastInfoEnd")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if block := findInfoComment(c); block != "" {
			return block
		}
	}
	return ""
}

func between(s, start, end string) string {
	i := strings.Index(s, start)
	if i < 0 {
		return ""
	}
	s = s[i+len(start):]
	if j := strings.Index(s, end); j >= 0 {
		s = s[:j]
	}
	return s
}
