package parser

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"wikibot/internal/models"
)

var (
	reLeadingYear = regexp.MustCompile(`^\d+`)
	reYearLink    = regexp.MustCompile(`/wiki/\d+$`)
)

const softHyphen = "­"

// ErrNoYear means an entry's text does not begin with a year. A single bad
// entry invalidates the whole run, because the schedule indexes positionally.
var ErrNoYear = errors.New("entry text does not start with a year")

// Parse converts the markup fragment of one feed entry into the ordered
// list of event records. baseURL qualifies relative hrefs. Records keep
// document order.
func Parse(entry models.FeedEntry, baseURL string) ([]models.EventRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(entry.Summary))
	if err != nil {
		return nil, err
	}

	var base *url.URL
	if baseURL != "" {
		base, err = url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
	}

	var records []models.EventRecord
	var parseErr error

	doc.Find("li").EachWithBreak(func(i int, li *goquery.Selection) bool {
		rec, err := parseItem(li, base)
		if err != nil {
			parseErr = fmt.Errorf("entry %d: %w", i, err)
			return false
		}
		records = append(records, rec)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return records, nil
}

func parseItem(li *goquery.Selection, base *url.URL) (models.EventRecord, error) {
	// Years with fewer than four digits carry a hidden span of padding
	// zeros that would still show up in the extracted text.
	li.Find(`span[style="visibility:hidden;"]`).Remove()

	text := strings.ReplaceAll(li.Text(), softHyphen, "")

	digits := reLeadingYear.FindString(text)
	if digits == "" {
		return models.EventRecord{}, fmt.Errorf("%w: %.40q", ErrNoYear, text)
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return models.EventRecord{}, fmt.Errorf("%w: %.40q", ErrNoYear, text)
	}

	rec := models.EventRecord{Text: text, Year: year}
	firstRegularFound := false

	li.Find("a").Each(func(_ int, a *goquery.Selection) {
		if img := a.Find("img"); img.Length() > 0 {
			// First image link feeds the media post; later ones are ignored.
			if rec.Image == nil {
				rec.Image = pickImage(img.First(), base)
			}
			return
		}

		href := resolve(a.AttrOr("href", ""), base)

		// A link ending in a pure number is the year link, but only while
		// no regular link has been accepted yet.
		if !firstRegularFound && reYearLink.MatchString(href) {
			rec.YearLink = href
			return
		}
		rec.Links = append(rec.Links, href)
		firstRegularFound = true
	})

	return rec, nil
}

type sizeCandidate struct {
	url  string
	size float64
}

// pickImage selects the largest image file. srcset lists alternates as a
// comma separated "<url> <mult>x" sequence; the base src counts as 1x.
// Ties go to the last listed candidate.
func pickImage(img *goquery.Selection, base *url.URL) *models.Image {
	raw := []string{img.AttrOr("src", "") + " 1x"}
	if srcset := img.AttrOr("srcset", ""); srcset != "" {
		raw = append(raw, strings.Split(srcset, ",")...)
	}

	var candidates []sizeCandidate
	for _, c := range raw {
		fields := strings.Fields(strings.TrimSpace(c))
		if len(fields) != 2 {
			continue
		}
		size, err := strconv.ParseFloat(strings.TrimSuffix(fields[1], "x"), 64)
		if err != nil {
			continue
		}
		candidates = append(candidates, sizeCandidate{url: fields[0], size: size})
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].size < candidates[j].size })

	return &models.Image{
		URL:     resolve(candidates[len(candidates)-1].url, base),
		AltText: img.AttrOr("alt", ""),
	}
}

func resolve(href string, base *url.URL) string {
	if base == nil || href == "" {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
