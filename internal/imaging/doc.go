// Package imaging supplies the per-item image transforms that plug into the
// engine's dispatcher: pixel-grid/image conversion and resizing. Which
// transforms a pipeline may use is declared up front through Capabilities,
// so an unavailable transform fails at pipeline construction instead of
// mid-batch.
package imaging
