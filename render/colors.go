package render

import "github.com/gdamore/tcell/v2"

// RGB color definitions for the sandbox view
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbSolid      = tcell.NewRGBColor(120, 124, 150) // Slate
	RgbOneWay     = tcell.NewRGBColor(180, 140, 80)  // Wood
	RgbClimbable  = tcell.NewRGBColor(80, 170, 110)  // Vine green
	RgbAgent      = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbTarget     = tcell.NewRGBColor(255, 80, 80)   // Red
	RgbManual     = tcell.NewRGBColor(255, 120, 255) // Magenta
	RgbPath       = tcell.NewRGBColor(100, 150, 255) // Blue
	RgbTakeoff    = tcell.NewRGBColor(50, 255, 50)   // Bright green
	RgbLanding    = tcell.NewRGBColor(140, 190, 255) // Bright blue
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusWarn = tcell.NewRGBColor(255, 255, 0)   // Yellow
)

var (
	styleBase    = tcell.StyleDefault.Background(RgbBackground)
	styleSolid   = styleBase.Foreground(RgbSolid)
	styleOneWay  = styleBase.Foreground(RgbOneWay)
	styleClimb   = styleBase.Foreground(RgbClimbable)
	styleAgent   = styleBase.Foreground(RgbAgent).Bold(true)
	styleTarget  = styleBase.Foreground(RgbTarget).Bold(true)
	styleManual  = styleBase.Foreground(RgbManual).Bold(true)
	stylePath    = styleBase.Foreground(RgbPath)
	styleTakeoff = styleBase.Foreground(RgbTakeoff)
	styleLanding = styleBase.Foreground(RgbLanding)
	styleStatus  = tcell.StyleDefault.Background(tcell.NewRGBColor(40, 42, 58)).Foreground(RgbStatusBar)
	styleWarn    = styleStatus.Foreground(RgbStatusWarn)
)
