// Package lexicon ships concrete implementations of pipeline.Lexicon, the
// morphological dictionary collaborator the tokenization pipeline queries
// for word meanings (spec.md §1, §3, §5). The interface itself lives in
// package pipeline, alongside the pipeline.Meaning type its methods
// return, so this package only needs to import pipeline and never the
// other way around.
package lexicon
