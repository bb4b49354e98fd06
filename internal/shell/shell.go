// Package shell mounts rendered views into the HTML document served for every
// navigable path. The document is parsed once; the element named by the
// anchor selector becomes the mount point and its original children are
// dropped.
package shell

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Shell is a mounted document. It is immutable and safe for concurrent use.
type Shell struct {
	selector string
	prefix   []byte
	suffix   []byte
}

// Mount parses document and prepares it so views can be rendered inside the
// element matched by selector. It returns a *MountTargetNotFoundError when no
// element matches.
func Mount(document []byte, selector string) (*Shell, error) {
	id, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}

	root, err := html.Parse(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse shell document: %w", err)
	}

	anchor := findByID(root, id)
	if anchor == nil {
		return nil, &MountTargetNotFoundError{Selector: selector}
	}

	for child := anchor.FirstChild; child != nil; {
		next := child.NextSibling
		anchor.RemoveChild(child)
		child = next
	}

	marker, err := newMarker()
	if err != nil {
		return nil, err
	}
	anchor.AppendChild(&html.Node{Type: html.CommentNode, Data: marker})

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("render shell document: %w", err)
	}

	token := "<!--" + marker + "-->"
	rendered := buf.String()
	idx := strings.Index(rendered, token)
	if idx < 0 {
		return nil, fmt.Errorf("render shell document: mount marker lost")
	}

	return &Shell{
		selector: selector,
		prefix:   []byte(rendered[:idx]),
		suffix:   []byte(rendered[idx+len(token):]),
	}, nil
}

// Selector returns the anchor selector the shell was mounted at.
func (s *Shell) Selector() string {
	return s.selector
}

// Render writes the document with content placed inside the anchor.
func (s *Shell) Render(w io.Writer, content []byte) error {
	for _, part := range [][]byte{s.prefix, content, s.suffix} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	return nil
}

func parseSelector(selector string) (string, error) {
	id, ok := strings.CutPrefix(strings.TrimSpace(selector), "#")
	if !ok || id == "" || strings.ContainsAny(id, " \t\n#.[]>") {
		return "", fmt.Errorf("%w: got %q", ErrInvalidSelector, selector)
	}
	return id, nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Namespace == "" && attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

func newMarker() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate mount marker: %w", err)
	}
	return "mount-" + hex.EncodeToString(buf), nil
}
