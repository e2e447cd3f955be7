package entrez

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/altinukshini/taxseq/internal/model"
)

var (
	ErrUnknownTaxon = errors.New("unknown taxonomic ID")
	ErrNoSession    = errors.New("no search session: call Search first")
)

type taxaSet struct {
	Taxa []struct {
		TaxID          string `xml:"TaxId"`
		ScientificName string `xml:"ScientificName"`
	} `xml:"Taxon"`
	Error string `xml:"ERROR"`
}

type esearchResponse struct {
	Result struct {
		Count    string `json:"count"`
		QueryKey string `json:"querykey"`
		WebEnv   string `json:"webenv"`
		Error    string `json:"ERROR"`
	} `json:"esearchresult"`
	Error string `json:"error"`
}

// LookupTaxon resolves a taxonomic ID to its scientific name.
func (c *Client) LookupTaxon(ctx context.Context, taxID string) (string, error) {
	v := url.Values{}
	v.Set("db", "taxonomy")
	v.Set("id", taxID)
	v.Set("retmode", "xml")

	body, err := c.Get(ctx, "efetch.fcgi", v)
	if err != nil {
		return "", fmt.Errorf("taxonomy lookup %s: %w", taxID, err)
	}
	defer body.Close()

	var set taxaSet
	if err := xml.NewDecoder(body).Decode(&set); err != nil {
		return "", fmt.Errorf("taxonomy lookup %s: decode: %w", taxID, err)
	}
	if set.Error != "" {
		return "", fmt.Errorf("taxonomy lookup %s: %s: %w", taxID, strings.TrimSpace(set.Error), ErrUnknownTaxon)
	}
	if len(set.Taxa) == 0 || set.Taxa[0].ScientificName == "" {
		return "", fmt.Errorf("taxonomy lookup %s: %w", taxID, ErrUnknownTaxon)
	}
	return set.Taxa[0].ScientificName, nil
}

// ESearch runs the history-enabled nucleotide search for an organism and
// returns the hit count plus the WebEnv/query_key pair. No IDs are returned.
func (c *Client) ESearch(ctx context.Context, taxID string) (model.SearchContext, error) {
	sc := model.SearchContext{TaxID: taxID}

	v := url.Values{}
	v.Set("db", "nucleotide")
	v.Set("term", sc.Term())
	v.Set("usehistory", "y")
	v.Set("retmax", "0")
	v.Set("retmode", "json")

	body, err := c.Get(ctx, "esearch.fcgi", v)
	if err != nil {
		return sc, fmt.Errorf("esearch %s: %w", sc.Term(), err)
	}
	defer body.Close()

	var resp esearchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return sc, fmt.Errorf("esearch %s: decode: %w", sc.Term(), err)
	}
	if msg := firstNonEmpty(resp.Error, resp.Result.Error); msg != "" {
		return sc, fmt.Errorf("esearch %s: %s", sc.Term(), msg)
	}

	count, err := strconv.Atoi(resp.Result.Count)
	if err != nil {
		return sc, fmt.Errorf("esearch %s: bad count %q: %w", sc.Term(), resp.Result.Count, err)
	}
	if count > 0 && (resp.Result.WebEnv == "" || resp.Result.QueryKey == "") {
		return sc, fmt.Errorf("esearch %s: response missing history session", sc.Term())
	}

	sc.Count = count
	sc.WebEnv = resp.Result.WebEnv
	sc.QueryKey = resp.Result.QueryKey
	return sc, nil
}

// Search resolves the organism and runs the history search. Failures are
// logged and reported in the result rather than returned, so callers can tell
// a failed call from an empty one. On success the history session is kept
// for FetchRecords.
func (c *Client) Search(ctx context.Context, taxID string) model.SearchResult {
	c.session = nil
	res := model.SearchResult{TaxID: taxID}

	organism, err := c.LookupTaxon(ctx, taxID)
	if err != nil {
		c.logger.Error("search failed", zap.String("taxid", taxID), zap.Error(err))
		res.Err = err
		return res
	}
	res.Organism = organism
	c.logger.Info("organism resolved", zap.String("taxid", taxID), zap.String("organism", organism))

	sc, err := c.ESearch(ctx, taxID)
	if err != nil {
		c.logger.Error("search failed", zap.String("taxid", taxID), zap.Error(err))
		res.Err = err
		return res
	}
	sc.Organism = organism
	c.session = &sc
	res.Count = sc.Count

	c.logger.Info("search complete",
		zap.String("term", sc.Term()),
		zap.Int("count", sc.Count))
	return res
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
