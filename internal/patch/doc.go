// Package patch rewrites a MaxQuant parameter file line by line using a fixed
// migration recipe.
//
// # Overview
//
// The file is never parsed as a tree. Each line is matched against a leading
// tag token; when the token has a rule in the Recipe, the rule's action runs
// against the output stream. Every other line is copied through verbatim,
// indentation included.
//
// # Actions
//
//   - Append: keep the tag, then insert new lines after it
//   - Delete: drop the tag
//   - Replace: drop the tag and write new lines in its place
//   - SetValue: rewrite the tag's value, optionally only when the current
//     line contains an expected old value
//
// # Two-line heuristic
//
// Scalar values occupy at most two physical lines:
//
//	<diaMinPeaksForRecal>5</diaMinPeaksForRecal>
//
// or
//
//	<intensityPredictionsFile>
//	</intensityPredictionsFile>
//
// When the closing tag is not on the matched line, exactly one more line is
// consumed. A missing closing tag on that line is logged as a warning and
// processing continues.
//
// # Usage
//
//	recipe, err := patch.DefaultRecipe()
//	if err != nil {
//	    return err
//	}
//	counts, err := patch.NewEngine(recipe, logger).Apply(in, out)
package patch
