// ═══════════════════════════════════════════════════════════════════════════════
// ROARING BITMAP MATERIALIZATION
// ═══════════════════════════════════════════════════════════════════════════════
// Query-tree evaluators are an external collaborator: this package only
// promises an ordered document stream per term. Handing that stream to a
// boolean-query engine built on roaring bitmaps (the representation this
// package's ancestry already used for its own in-memory postings) is the
// natural seam, without this package taking on evaluating queries itself.
// ═══════════════════════════════════════════════════════════════════════════════

package invindex

import "github.com/RoaringBitmap/roaring"

// MaterializeBitmap drains cur's remaining document stream into a roaring
// bitmap. cur must already be positioned on a term (via Position or
// Advance); MaterializeBitmap consumes it fully, so callers that still
// need counts, positions, or payloads should read those before calling
// this, or open a second cursor.
func MaterializeBitmap(cur *Cursor) (*roaring.Bitmap, error) {
	bm := roaring.New()
	for {
		doc, err := cur.NextDocument()
		if err != nil {
			return nil, err
		}
		if doc == EndOfList {
			break
		}
		bm.Add(uint32(doc))
	}
	return bm, nil
}
