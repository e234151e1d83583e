// Package pipeline runs text through the sentiment field pipeline:
// tokenize and score → synthesize → render.
//
// Both the MCP server and the CLI go through a Runner so that scoring,
// caching and logging behave the same for every entry point.
//
// # Usage
//
//	runner := pipeline.NewRunner(lexicon.NewAnalyzer(), field.DefaultParams(),
//	    pipeline.NewFieldCache(32), logger)
//	res, err := runner.Synthesize(ctx, "It was the best of times")
//	if err != nil {
//	    return err
//	}
//	img, err := pipeline.Render(res.Field, pipeline.RenderOptions{Scale: 20})
//
// # Caching
//
// Synthesized fields are cached by an xxhash of the source text in a bounded
// least-recently-used cache. Concurrent requests for the same text share one
// computation. Cached fields are shared and must be treated as read-only.
package pipeline
