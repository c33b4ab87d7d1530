/*Package interval implements forward-only membership queries against sorted
  lists of genomic intervals and positions: alignable blocks from MUMmer
  show-coords, named gene regions, optional target regions, and the
  candidate-site lists derived from them.
  Every list is sorted by (chromosome, start) in its input file, and every
  query sequence issued against it is sorted the same way, so each Cursor
  only ever moves forward and a full scan costs O(entries + queries).
  Sort order is assumed, not checked; unsorted inputs silently miss matches.
  Coordinates are 1-based and closed, as in the inputs.
*/
package interval
