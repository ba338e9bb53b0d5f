package barcode

import "fmt"

// Record is one row of the barcode design table: the target a barcode
// identifies, the barcode itself, and (once augmented) its reverse
// complement.
type Record struct {
	Target  string
	Seq     string
	RevComp string
}

// Augment fills in the reverse complement for every record that lacks one.
// Records loaded from an already-augmented reference pass through untouched.
func Augment(recs []Record) error {
	for i := range recs {
		if recs[i].RevComp != "" {
			continue
		}
		rc, err := RevComp([]byte(recs[i].Seq))
		if err != nil {
			return fmt.Errorf("barcode %q (target %s): %w", recs[i].Seq, recs[i].Target, err)
		}
		recs[i].RevComp = string(rc)
	}
	return nil
}
