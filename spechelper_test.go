package ctrlspec_test

import (
	"go.llib.dev/ctrlspec/internal/spechelper"
	"go.llib.dev/ctrlspec/mvc"
)

// The controllers below are the actions under test of the macro suites.
// They speak only through the mvc capability ports,
// the way any controller the macros target would.

func listNotes(resource mvc.Resource[spechelper.Note], criteria mvc.Criteria) mvc.ControllerFunc {
	return func(p mvc.Responder, r mvc.Request) error {
		notes, err := resource.FindAll(r.Context(), criteria)
		if err != nil {
			return err
		}
		p.Assign("notes", notes)
		return p.Render("notes/index")
	}
}

func showNote(resource mvc.Resource[spechelper.Note]) mvc.ControllerFunc {
	return func(p mvc.Responder, r mvc.Request) error {
		note, found, err := resource.FindByID(r.Context(), r.Params().String("id"))
		if err != nil {
			return err
		}
		if !found {
			return p.Render("errors/not-found")
		}
		p.Assign("note", note)
		return p.Render("notes/show")
	}
}

func createNote(resource mvc.Resource[spechelper.Note]) mvc.ControllerFunc {
	return func(p mvc.Responder, r mvc.Request) error {
		note := resource.Init(mvc.Attrs(r.Params()))
		ok, err := resource.Save(r.Context(), &note)
		if err != nil {
			return err
		}
		if !ok {
			p.Assign("note", note)
			return p.Render("notes/new")
		}
		return p.RedirectTo("/notes")
	}
}
