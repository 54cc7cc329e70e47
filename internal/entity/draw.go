package entity

import "github.com/shapehunt/engine/internal/render"

// Draw renders the interactor at its current alpha and scale.
func (e *Interactor) Draw(c render.Canvas) {
	if !e.visible || e.removed || e.alpha <= 0 {
		return
	}
	c.SetAlpha(e.alpha)
	s := e.Shape
	switch s.Kind {
	case ShapeRect:
		w, h := s.W*e.scale, s.H*e.scale
		c.FillRect(e.x-w/2, e.y-h/2, w, h, s.Color)
	case ShapeCircle:
		c.FillCircle(e.x, e.y, s.R*e.scale, s.Color)
	case ShapeTriangle:
		c.FillTriangle(e.x, e.y, s.W*e.scale, s.Color)
	}
	c.SetAlpha(1)
}
