// Package language normalizes user-supplied language identifiers to
// the two-letter codes the whisper engine accepts. Inputs may be ISO
// 639-1 codes, ISO 639-2 codes, English words ("french"), or BCP 47
// tags ("en-US"); all collapse to the bare base code.
package language
