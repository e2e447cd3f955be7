package entrez

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/altinukshini/taxseq/internal/model"
)

// Batch is one efetch page: retstart and retmax.
type Batch struct {
	Start int
	Size  int
}

// Batches splits maxRecords into pages of at most size records.
func Batches(maxRecords, size int) []Batch {
	if maxRecords <= 0 || size <= 0 {
		return nil
	}
	out := make([]Batch, 0, (maxRecords+size-1)/size)
	for start := 0; start < maxRecords; start += size {
		out = append(out, Batch{Start: start, Size: min(size, maxRecords-start)})
	}
	return out
}

// FetchRecords pages through the stored search session until maxRecords
// have been requested. Batches are not retried and the first failure is
// returned. A batch that comes back short is logged and accepted.
func (c *Client) FetchRecords(ctx context.Context, maxRecords int) ([]model.SequenceRecord, error) {
	if c.session == nil {
		return nil, ErrNoSession
	}
	sc := *c.session

	var all []model.SequenceRecord
	for _, b := range Batches(maxRecords, c.opts.BatchSize) {
		recs, err := c.fetchBatch(ctx, sc, b)
		if err != nil {
			return nil, fmt.Errorf("fetch records (retstart=%d retmax=%d): %w", b.Start, b.Size, err)
		}
		if len(recs) < b.Size {
			c.logger.Warn("short batch",
				zap.Int("retstart", b.Start),
				zap.Int("requested", b.Size),
				zap.Int("received", len(recs)))
		}
		c.logger.Debug("batch fetched", zap.Int("retstart", b.Start), zap.Int("records", len(recs)))
		all = append(all, recs...)
	}
	return all, nil
}

func (c *Client) fetchBatch(ctx context.Context, sc model.SearchContext, b Batch) ([]model.SequenceRecord, error) {
	v := url.Values{}
	v.Set("db", "nucleotide")
	v.Set("rettype", c.opts.RetType)
	v.Set("retmode", "text")
	v.Set("retstart", strconv.Itoa(b.Start))
	v.Set("retmax", strconv.Itoa(b.Size))
	v.Set("WebEnv", sc.WebEnv)
	v.Set("query_key", sc.QueryKey)

	body, err := c.Get(ctx, "efetch.fcgi", v)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	br := bufio.NewReaderSize(body, 64*1024)
	if err := sniffError(br); err != nil {
		return nil, err
	}
	if c.opts.RetType == "fasta" {
		return ParseFASTA(br)
	}
	return ParseGenBank(br)
}

// sniffError detects the XML or JSON error documents efetch sends with a
// 200 status, e.g. when a history session has expired.
func sniffError(br *bufio.Reader) error {
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return fmt.Errorf("read response: %w", err)
	}
	head = bytes.TrimSpace(head)
	switch {
	case bytes.HasPrefix(head, []byte("<")):
		if i := bytes.Index(head, []byte("<ERROR>")); i >= 0 {
			msg := head[i+len("<ERROR>"):]
			if j := bytes.Index(msg, []byte("</ERROR>")); j >= 0 {
				msg = msg[:j]
			}
			return fmt.Errorf("efetch error: %s", bytes.TrimSpace(msg))
		}
		return fmt.Errorf("efetch returned markup instead of flat-file records")
	case bytes.HasPrefix(head, []byte("{")):
		return fmt.Errorf("efetch error: %s", head)
	}
	return nil
}
