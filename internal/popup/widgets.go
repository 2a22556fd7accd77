package popup

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// drawPopup lays out the header, the details line and the two buttons.
func drawPopup(gtx layout.Context, th *material.Theme, cfg Config, c Content, retryBtn, skipBtn *widget.Clickable) {
	paint.FillShape(gtx.Ops, cfg.BGColor, clip.Rect{Max: gtx.Constraints.Max}.Op())

	layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Label(th, unit.Sp(14), c.Header)
				lbl.Color = cfg.TextColor
				lbl.Font.Weight = font.Medium
				return lbl.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Label(th, unit.Sp(13), c.Details)
				lbl.Color = cfg.DimColor
				lbl.MaxLines = 2
				return lbl.Layout(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return drawActionButton(gtx, th, retryBtn, cfg.RetryColor, c.Retry)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(10)}.Layout),
					layout.Flexed(2, func(gtx layout.Context) layout.Dimensions {
						return drawActionButton(gtx, th, skipBtn, cfg.SkipColor, c.Skip)
					}),
				)
			}),
		)
	})
}

// drawActionButton draws a rounded button with a centered label.
func drawActionButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, bg color.NRGBA, text string) layout.Dimensions {
	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		if btn.Hovered() {
			bg = darken(bg, 0.85)
		}

		macro := op.Record(gtx.Ops)
		dims := layout.Inset{
			Top: unit.Dp(8), Bottom: unit.Dp(8),
			Left: unit.Dp(10), Right: unit.Dp(10),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Label(th, unit.Sp(13), text)
				lbl.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
				lbl.MaxLines = 1
				return lbl.Layout(gtx)
			})
		})
		call := macro.Stop()

		size := image.Pt(gtx.Constraints.Max.X, dims.Size.Y)
		rr := gtx.Dp(unit.Dp(6))
		paint.FillShape(gtx.Ops, bg, clip.RRect{
			Rect: image.Rectangle{Max: size},
			NE:   rr, NW: rr, SE: rr, SW: rr,
		}.Op(gtx.Ops))

		call.Add(gtx.Ops)
		return layout.Dimensions{Size: size}
	})
}

func darken(c color.NRGBA, f float32) color.NRGBA {
	return color.NRGBA{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}
