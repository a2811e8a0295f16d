package model

// RawFile is the parsed form of one component source file: its Program AST
// plus the handful of source-level facts the merge engine needs that a
// real parser would surface as metadata (marker comments, managed-region
// byte offsets). Source is kept alongside the AST because the managed
// verbatim region is spliced in as character-exact text, not as a subtree.
type RawFile struct {
	Program *RawNode // RawProgram; Children are top-level statements/imports

	// ManagedExprStart is the source offset of the root managed markup
	// expression (the node directly under the plasmic-managed-jsx comment).
	ManagedExprStart int
	// ManagedComment is the full leading comment text found on that node,
	// e.g. "plasmic-managed-jsx/3".
	ManagedComment string
	// ManagedRevision is the decimal revision number captured from
	// ManagedComment.
	ManagedRevision int

	// Imports are the RawImportDeclaration nodes among Program.Children, in
	// source order.
	Imports []*RawNode

	// Source is the original file text, used for the plasmic-managed-start
	// / plasmic-managed-end verbatim-region substitution.
	Source string
}
