package testutil

import "github.com/foerderfunke/shaclgen/internal/store"

// defaultShape returns a shape with a minimal but valid Turtle body.
func defaultShape(name string) store.Shape {
	return store.Shape{
		Name:      name,
		LegalText: "§ 1 Leistungsberechtigt ist, wer die Voraussetzungen erfuellt.",
		Turtle: "@prefix sh: <http://www.w3.org/ns/shacl#> .\n" +
			"@prefix ff: <https://foerderfunke.org/default#> .\n\n" +
			"ff:" + name + " a ff:RequirementProfile .\n",
	}
}

// ShapeOption configures a shape during builder setup.
type ShapeOption func(*store.Shape)

// LegalText sets the legal text the shape was generated from.
func LegalText(text string) ShapeOption {
	return func(s *store.Shape) { s.LegalText = text }
}

// Turtle sets the shape's Turtle body.
func Turtle(turtle string) ShapeOption {
	return func(s *store.Shape) { s.Turtle = turtle }
}

// Description sets the shape's free-text description.
func Description(desc string) ShapeOption {
	return func(s *store.Shape) { s.Description = desc }
}
