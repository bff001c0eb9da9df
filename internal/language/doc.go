// Package language wraps BCP-47 tag handling and heuristic text language
// detection. Detection is used to skip translating documents that are
// already in the target language.
package language
