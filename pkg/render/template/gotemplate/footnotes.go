package gotemplate

import (
	"bytes"
	"errors"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-footnotes/pkg/footnotes"
)

// documentKey holds the per-render document binding in the template context.
const documentKey = "footnotes_document"

// ErrNoDocument is reported when a footnote tag executes outside
// Engine.RenderDocument.
var ErrNoDocument = errors.New("gotemplate: footnote tags require a document render")

type documentBinding struct {
	session *footnotes.Session
	doc     string
}

var (
	footnoteTagsOnce sync.Once
	footnoteTagsErr  error
)

// registerFootnoteTags installs the tags in pongo2's global tag table:
//
//	{% footnoteref "id" "description" %}content{% endfootnoteref %}
//	{% footnotes %}
func registerFootnoteTags() error {
	footnoteTagsOnce.Do(func() {
		if err := pongo2.RegisterTag("footnoteref", parseFootnoteRef); err != nil {
			footnoteTagsErr = err
			return
		}
		footnoteTagsErr = pongo2.RegisterTag("footnotes", parseFootnotes)
	})
	return footnoteTagsErr
}

type footnoteRefNode struct {
	id          pongo2.IEvaluator
	description pongo2.IEvaluator
	body        *pongo2.NodeWrapper
}

func (node *footnoteRefNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	binding, err := bindingFrom(ctx, "footnoteref")
	if err != nil {
		return err
	}

	id, err := node.id.Evaluate(ctx)
	if err != nil {
		return err
	}

	var description string
	if node.description != nil {
		value, err := node.description.Evaluate(ctx)
		if err != nil {
			return err
		}
		if !value.IsNil() {
			description = value.String()
		}
	}

	var content bytes.Buffer
	if err := node.body.Execute(ctx, &content); err != nil {
		return err
	}

	markup := binding.session.Ref(binding.doc, content.String(), id.String(), description)
	if _, werr := writer.WriteString(markup); werr != nil {
		return &pongo2.Error{Sender: "tag:footnoteref", OrigError: werr}
	}
	return nil
}

func parseFootnoteRef(doc *pongo2.Parser, _ *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	if arguments.Remaining() == 0 {
		return nil, arguments.Error("footnoteref requires an id.", nil)
	}

	node := &footnoteRefNode{}
	id, err := arguments.ParseExpression()
	if err != nil {
		return nil, err
	}
	node.id = id

	if arguments.Remaining() > 0 {
		arguments.Match(pongo2.TokenSymbol, ",")
		description, err := arguments.ParseExpression()
		if err != nil {
			return nil, err
		}
		node.description = description
	}
	if arguments.Remaining() > 0 {
		return nil, arguments.Error("Malformed footnoteref-tag arguments.", nil)
	}

	wrapper, endArgs, err := doc.WrapUntilTag("endfootnoteref")
	if err != nil {
		return nil, err
	}
	if endArgs.Remaining() > 0 {
		return nil, endArgs.Error("Arguments not allowed here.", nil)
	}
	node.body = wrapper

	return node, nil
}

type footnotesNode struct{}

func (node *footnotesNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	binding, err := bindingFrom(ctx, "footnotes")
	if err != nil {
		return err
	}
	if _, werr := writer.WriteString(binding.session.List(binding.doc)); werr != nil {
		return &pongo2.Error{Sender: "tag:footnotes", OrigError: werr}
	}
	return nil
}

func parseFootnotes(_ *pongo2.Parser, _ *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	if arguments.Remaining() > 0 {
		return nil, arguments.Error("footnotes takes no arguments.", nil)
	}
	return &footnotesNode{}, nil
}

func bindingFrom(ctx *pongo2.ExecutionContext, tag string) (*documentBinding, *pongo2.Error) {
	binding, ok := ctx.Public[documentKey].(*documentBinding)
	if !ok || binding == nil || binding.session == nil {
		return nil, &pongo2.Error{Sender: "tag:" + tag, OrigError: ErrNoDocument}
	}
	return binding, nil
}
