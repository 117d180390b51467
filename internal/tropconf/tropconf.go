// Package tropconf decodes the trophy-set descriptor (TROPCONF.SFM) that
// accompanies a progress file. The descriptor is the authority on which
// trophies exist and on their static fields; the progress file only carries
// per-trophy state.
//
// Document shape:
//
//	<trophyconf version="1.0" policy="large">
//	  <npcommid>NPWR00001_00</npcommid>
//	  <trophyset-version>01.00</trophyset-version>
//	  <parental-level license-area="default">0</parental-level>
//	  <title-name>…</title-name>
//	  <title-detail>…</title-detail>
//	  <trophy id="000" hidden="no" ttype="P" pid="-1">
//	    <name>…</name>
//	    <detail>…</detail>
//	  </trophy>
//	  …
//	</trophyconf>
package tropconf

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/trophykit/pkg/types"
)

// ErrMetadataParse indicates the descriptor is malformed.
var ErrMetadataParse = errors.New("tropconf: malformed descriptor")

// NoPlatinumLink is the pid value of trophies outside the platinum's scope.
const NoPlatinumLink int32 = -1

// TrophySet is the decoded descriptor.
type TrophySet struct {
	FormatVersion string // version attribute of the root element
	Policy        string
	NpCommID      string
	Version       string // trophyset-version
	ParentalLevel int
	LicenseArea   string
	Title         string
	Detail        string
	Trophies      []Trophy
}

// Trophy is the static description of one trophy.
type Trophy struct {
	ID             uint32
	Hidden         bool
	Grade          types.Grade
	PlatinumLinkID int32
	Name           string
	Detail         string
}

// PlatinumRelevant reports whether the trophy counts towards the platinum.
func (t Trophy) PlatinumRelevant() bool {
	return t.PlatinumLinkID >= 0
}

type document struct {
	XMLName       xml.Name `xml:"trophyconf"`
	Version       string   `xml:"version,attr"`
	Policy        string   `xml:"policy,attr"`
	NpCommID      string   `xml:"npcommid"`
	SetVersion    string   `xml:"trophyset-version"`
	ParentalLevel struct {
		LicenseArea string `xml:"license-area,attr"`
		Value       string `xml:",chardata"`
	} `xml:"parental-level"`
	TitleName   string        `xml:"title-name"`
	TitleDetail string        `xml:"title-detail"`
	Trophies    []trophyEntry `xml:"trophy"`
}

type trophyEntry struct {
	ID     string `xml:"id,attr"`
	Hidden string `xml:"hidden,attr"`
	TType  string `xml:"ttype,attr"`
	PID    string `xml:"pid,attr"`
	Name   string `xml:"name"`
	Detail string `xml:"detail"`
}

// Parse decodes a descriptor document. Bytes before the first '<' (a BOM or
// a binary preamble) are ignored. Any malformed content, a non-numeric id or
// a duplicate id fails the whole document with ErrMetadataParse.
func Parse(data []byte) (*TrophySet, error) {
	start := bytes.IndexByte(data, '<')
	if start < 0 {
		return nil, fmt.Errorf("%w: no XML content", ErrMetadataParse)
	}

	dec := xml.NewDecoder(bytes.NewReader(data[start:]))
	dec.CharsetReader = charsetReader

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataParse, err)
	}

	level, err := parseIntField("parental-level", doc.ParentalLevel.Value, 0)
	if err != nil {
		return nil, err
	}

	set := &TrophySet{
		FormatVersion: clean(doc.Version),
		Policy:        clean(doc.Policy),
		NpCommID:      clean(doc.NpCommID),
		Version:       clean(doc.SetVersion),
		ParentalLevel: level,
		LicenseArea:   clean(doc.ParentalLevel.LicenseArea),
		Title:         clean(doc.TitleName),
		Detail:        clean(doc.TitleDetail),
		Trophies:      make([]Trophy, 0, len(doc.Trophies)),
	}

	seen := make(map[uint32]struct{}, len(doc.Trophies))
	for i, te := range doc.Trophies {
		tr, err := te.decode()
		if err != nil {
			return nil, fmt.Errorf("trophy #%d: %w", i, err)
		}
		if _, dup := seen[tr.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate trophy id %d", ErrMetadataParse, tr.ID)
		}
		seen[tr.ID] = struct{}{}
		set.Trophies = append(set.Trophies, tr)
	}
	return set, nil
}

func (te trophyEntry) decode() (Trophy, error) {
	idStr := strings.TrimSpace(te.ID)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return Trophy{}, fmt.Errorf("%w: trophy id %q", ErrMetadataParse, te.ID)
	}
	pid, err := parseIntField("pid", te.PID, int(NoPlatinumLink))
	if err != nil {
		return Trophy{}, err
	}
	if pid < int(NoPlatinumLink) {
		pid = int(NoPlatinumLink)
	}
	return Trophy{
		ID:             uint32(id),
		Hidden:         hiddenFlag(te.Hidden),
		Grade:          types.GradeFromToken(strings.TrimSpace(te.TType)),
		PlatinumLinkID: int32(pid),
		Name:           clean(te.Name),
		Detail:         clean(te.Detail),
	}, nil
}

// hiddenFlag accepts the "yes" token real descriptors use, plus "true".
func hiddenFlag(v string) bool {
	v = strings.TrimSpace(v)
	return strings.EqualFold(v, "yes") || strings.EqualFold(v, "true")
}

// parseIntField parses a signed 32-bit decimal field; empty yields def.
func parseIntField(name, v string, def int) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMetadataParse, name, v)
	}
	return int(n), nil
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// charsetReader resolves the encoding named in the XML declaration. UTF-8 is
// handled by encoding/xml itself and never reaches here.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q: unsupported", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
