package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/goquery"
	pdhttp "github.com/fwojciec/pagedigest/http"
)

// Adapter names.
const (
	CSMS             = "csms"
	FactSheets       = "fact-sheets"
	DocumentsLibrary = "documents-library"
	FederalRegister  = "federal-register"
)

// Sources holds the endpoints and search terms of the structured sources.
// Tests point the URLs at local servers.
type Sources struct {
	CSMSURL string

	FactSheetsURL  string
	FactSheetsTerm string

	DocumentsLibraryURL   string
	DocumentsLibraryTerm  string
	DocumentsSearchLabel  string
	DocumentsSearchSubmit string

	FederalRegisterEndpoint string
	FederalRegisterTerm     string

	// TopN caps the announcements of every source except CSMS, which
	// reports its whole feed.
	TopN int
}

// DefaultSources returns the production endpoints and terms.
func DefaultSources() Sources {
	return Sources{
		CSMSURL:                 "https://www.cbp.gov/trade/automated/cargo-systems-messaging-service",
		FactSheetsURL:           "https://www.whitehouse.gov/fact-sheets/",
		FactSheetsTerm:          "Tariff",
		DocumentsLibraryURL:     "https://www.cbp.gov/documents-library",
		DocumentsLibraryTerm:    "tariff",
		DocumentsSearchLabel:    "Word or Phrase",
		DocumentsSearchSubmit:   "apply",
		FederalRegisterEndpoint: pdhttp.FederalRegisterEndpoint,
		FederalRegisterTerm:     "Tariff Rates",
		TopN:                    5,
	}
}

// IsCSMS reports whether rawURL points at the CBP messaging service.
func IsCSMS(rawURL string) bool {
	return strings.Contains(strings.ToLower(rawURL), "cbp.gov/trade/automated/cargo-systems-messaging-service")
}

// IsFactSheets reports whether rawURL is the White House fact sheet index.
func IsFactSheets(rawURL string) bool {
	return canonical(rawURL) == "https://www.whitehouse.gov/fact-sheets"
}

// IsDocumentsLibrary reports whether rawURL is the CBP documents library.
func IsDocumentsLibrary(rawURL string) bool {
	return canonical(rawURL) == "https://www.cbp.gov/documents-library"
}

// IsFederalRegister reports whether rawURL is a Federal Register search page.
func IsFederalRegister(rawURL string) bool {
	u := strings.ToLower(rawURL)
	return strings.Contains(u, "federalregister.gov") &&
		(strings.Contains(u, "/documents/search") || strings.Contains(u, "document-search"))
}

func canonical(rawURL string) string {
	return strings.TrimRight(strings.ToLower(rawURL), "/")
}

// DefaultAdapters returns the structured-source adapters in priority order.
// renderer may be nil, in which case CSMS uses plain HTTP and the documents
// library reports EUNAVAILABLE.
func DefaultAdapters(fetcher pagedigest.Fetcher, renderer pagedigest.Renderer, src Sources) []pagedigest.Adapter {
	return []pagedigest.Adapter{
		csmsAdapter(fetcher, renderer, src),
		factSheetsAdapter(fetcher, src),
		documentsLibraryAdapter(renderer, src),
		federalRegisterAdapter(fetcher, src),
	}
}

func csmsAdapter(fetcher pagedigest.Fetcher, renderer pagedigest.Renderer, src Sources) pagedigest.Adapter {
	return pagedigest.Adapter{
		Name:  CSMS,
		Label: "CBP CSMS Recent Messages",
		Match: IsCSMS,
		Fetch: func(ctx context.Context) (string, error) {
			// The feed is injected by script; plain HTTP is the fallback.
			if renderer != nil {
				html, err := renderer.Render(ctx, src.CSMSURL, pagedigest.RenderOptions{
					WaitFor: goquery.CSMSStorySelector,
				})
				if err == nil {
					return html, nil
				}
				if ctx.Err() != nil {
					return "", ctx.Err()
				}
			}
			return fetcher.Fetch(ctx, src.CSMSURL)
		},
		Parse: func(raw string) ([]pagedigest.Announcement, error) {
			return goquery.ParseCSMS(raw, src.CSMSURL)
		},
	}
}

func factSheetsAdapter(fetcher pagedigest.Fetcher, src Sources) pagedigest.Adapter {
	return pagedigest.Adapter{
		Name:  FactSheets,
		Label: fmt.Sprintf("White House Fact Sheets — %s (top %d)", src.FactSheetsTerm, src.TopN),
		Match: IsFactSheets,
		Fetch: func(ctx context.Context) (string, error) {
			q := url.Values{"s": {src.FactSheetsTerm}}
			return fetcher.Fetch(ctx, src.FactSheetsURL+"?"+q.Encode())
		},
		Parse: func(raw string) ([]pagedigest.Announcement, error) {
			return goquery.ParseFactSheets(raw, src.FactSheetsURL, src.TopN)
		},
	}
}

func documentsLibraryAdapter(renderer pagedigest.Renderer, src Sources) pagedigest.Adapter {
	return pagedigest.Adapter{
		Name:  DocumentsLibrary,
		Label: fmt.Sprintf("CBP Documents Library — %s (top %d)", src.DocumentsLibraryTerm, src.TopN),
		Match: IsDocumentsLibrary,
		Fetch: func(ctx context.Context) (string, error) {
			if renderer == nil {
				return "", pagedigest.Errorf(pagedigest.EUNAVAILABLE, "documents library search requires a headless browser")
			}
			return renderer.Render(ctx, src.DocumentsLibraryURL, pagedigest.RenderOptions{
				WaitFor: goquery.DocumentRowSelector,
				Search: &pagedigest.FormSearch{
					Label:  src.DocumentsSearchLabel,
					Query:  src.DocumentsLibraryTerm,
					Submit: src.DocumentsSearchSubmit,
				},
			})
		},
		Parse: func(raw string) ([]pagedigest.Announcement, error) {
			return goquery.ParseDocumentsLibrary(raw, src.DocumentsLibraryURL, src.TopN)
		},
	}
}

func federalRegisterAdapter(fetcher pagedigest.Fetcher, src Sources) pagedigest.Adapter {
	return pagedigest.Adapter{
		Name:  FederalRegister,
		Label: fmt.Sprintf("Federal Register — %s (top %d newest)", src.FederalRegisterTerm, src.TopN),
		Match: IsFederalRegister,
		Fetch: func(ctx context.Context) (string, error) {
			return fetcher.Fetch(ctx, pdhttp.FederalRegisterURL(src.FederalRegisterEndpoint, src.FederalRegisterTerm, src.TopN))
		},
		Parse: func(raw string) ([]pagedigest.Announcement, error) {
			return pdhttp.ParseFederalRegister(raw, src.TopN)
		},
	}
}
