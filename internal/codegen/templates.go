package codegen

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
)

// funcMap provides helper functions available to all templates.
var funcMap = template.FuncMap{
	"quote":      strconv.Quote,
	"goPin":      goPin,
	"goDuration": goDuration,
	"millis":     func(d time.Duration) int64 { return d.Milliseconds() },
	"seconds":    func(d time.Duration) int64 { return int64(d / time.Second) },
	"wholeSec":   func(d time.Duration) bool { return d%time.Second == 0 },
	"macro":      macro,
	"inc":        func(i int) int { return i + 1 },
}

// templates holds all parsed code generation templates.
var templates = template.Must(template.New("").Funcs(funcMap).Parse(goFileTmpl + headerTmpl))

// renderTemplate executes a named template.
func renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}
	return b.String(), nil
}

// goPin renders a pin as a Go expression.
func goPin(p board.Pin) string {
	if !p.Assigned() {
		return "board.NoPin"
	}
	return strconv.Itoa(int(p))
}

// goDuration renders d as a readable Go constant expression.
func goDuration(d time.Duration) string {
	switch {
	case d == 0:
		return "0"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d * time.Hour", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%d * time.Minute", d/time.Minute)
	case d%time.Second == 0:
		return fmt.Sprintf("%d * time.Second", d/time.Second)
	case d%time.Millisecond == 0:
		return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond)
	default:
		return fmt.Sprintf("time.Duration(%d)", int64(d))
	}
}

// macro pads a #define name to the column used by the firmware headers.
func macro(name string) string {
	const width = 28
	if len(name) >= width {
		return name + " "
	}
	return name + strings.Repeat(" ", width-len(name))
}

const goFileTmpl = `{{define "goFile"}}// Code generated by trackerctl gen. DO NOT EDIT.

package {{.Package}}

import (
	"time"

	"github.com/mysoltrk/mysoltrk-go/pkg/board"
	"github.com/mysoltrk/mysoltrk-go/pkg/limits"
)

// Profiles returns the generated board profiles.
func Profiles() []board.Profile {
	return []board.Profile{
{{- range .Profiles}}
		{{template "goProfile" .}},
{{- end}}
	}
}
{{end}}

{{define "goProfile"}}{
Name: {{quote .Name}},
{{- if .Description}}
Description: {{quote .Description}},
{{- end}}
{{- if .Target}}
Target: {{quote .Target}},
{{- end}}
{{- if .Debug}}
Debug: true,
{{- end}}
Pins: board.Pins{
ActuatorRight: board.HBridge{Pin1: {{goPin .Pins.ActuatorRight.Pin1}}, Pin2: {{goPin .Pins.ActuatorRight.Pin2}}},
ActuatorLeft: board.HBridge{Pin1: {{goPin .Pins.ActuatorLeft.Pin1}}, Pin2: {{goPin .Pins.ActuatorLeft.Pin2}}},
Shunt: {{goPin .Pins.Shunt}},
Vref: {{goPin .Pins.Vref}},
PhotoresistorDriver: {{goPin .Pins.PhotoresistorDriver}},
Photoresistors: [4]board.Pin{ {{- range $i, $p := .Pins.Photoresistors}}{{if $i}}, {{end}}{{goPin $p}}{{end -}} },
Mosfet: {{goPin .Pins.Mosfet}},
},
{{- with .Limits.Config}}
Limits: limits.MustNew(limits.Config{
MaxSamples: {{.MaxSamples}},
GuardWindow: {{goDuration .GuardWindow}},
Shunt: limits.ShuntLimits{Shared: {{.Shunt.Shared}}, Right: {{.Shunt.Right}}, Left: {{.Shunt.Left}}},
MinVref: {{.MinVref}},
MaxMovement: {{goDuration .MaxMovement}},
{{- with .Tracking}}
Tracking: &limits.TrackingLimits{
LightThreshold: {{.LightThreshold}},
PhotoresistorDifferential: {{.PhotoresistorDifferential}},
MaxWork: {{goDuration .MaxWork}},
SleepDelay: {{goDuration .SleepDelay}},
},
{{- end}}
}),
{{- end}}
}{{end}}`

const headerTmpl = `{{define "header"}}// Generated by trackerctl gen from profile {{.Name}}. DO NOT EDIT.
{{- if .Description}}
// {{.Description}}
{{- end}}
{{- if eq .Target "avr"}}

#ifndef __AVR__
    #error Tested for AVR only
#endif
{{- end}}
{{- if .Debug}}

// set it to obtain more debug
#define MORE_DEBUG
{{- end}}

// Pins
#define {{macro "ACTUATOR_R_PIN1"}}{{.Pins.ActuatorRight.Pin1}}
#define {{macro "ACTUATOR_R_PIN2"}}{{.Pins.ActuatorRight.Pin2}}
#define {{macro "ACTUATOR_L_PIN1"}}{{.Pins.ActuatorLeft.Pin1}}
#define {{macro "ACTUATOR_L_PIN2"}}{{.Pins.ActuatorLeft.Pin2}}
#define {{macro "SHUNT_PIN"}}{{.Pins.Shunt}}
#define {{macro "VREF_PIN"}}{{.Pins.Vref}}
{{- if .Pins.HasPhotoresistors}}
#define {{macro "PHOTORESISTOR_DRIVER"}}{{.Pins.PhotoresistorDriver}}
{{- range $i, $p := .Pins.Photoresistors}}
#define {{macro (printf "PHOTORESISTOR_PIN%d" (inc $i))}}{{$p}}
{{- end}}
{{- end}}
{{- if .Pins.Mosfet.Assigned}}
#define {{macro "MOSFET_PIN"}}{{.Pins.Mosfet}}
{{- end}}
{{with .Limits.Config}}
// Program params
#define {{macro "MAX_SAMPLES"}}{{.MaxSamples}}
#define {{macro "IGNORE_SHUNT_VREF_FOR_"}}{{millis .GuardWindow}}L
{{- if wholeSec .MaxMovement}}
#define {{macro "MAX_SECONDS_MOVEMENT"}}{{seconds .MaxMovement}}
{{- else}}
#define {{macro "MAX_MILLISECONDS_MOVEMENT"}}{{millis .MaxMovement}}L
{{- end}}
{{- with .Tracking}}
#define {{macro "PHOTORESISTOR_THREESHOLD"}}{{.PhotoresistorDifferential}}
#define {{macro "MAX_MILLISECONDS_WORK"}}{{millis .MaxWork}}L
#define {{macro "SLEEP_DELAY"}}{{millis .SleepDelay}}L
{{- end}}

// External hardware params
#define {{macro "MIN_VREF_VALUE"}}{{.MinVref}}
{{- with .Tracking}}
#define {{macro "LIGHT_THREESHOLD"}}{{.LightThreshold}}
{{- end}}
{{- if .Shunt.Shared}}
#define {{macro "MAX_SHUNT_VALUE"}}{{.Shunt.Shared}}
{{- end}}
{{- if .Shunt.Right}}
#define {{macro "MAX_SHUNT_VALUE_R"}}{{.Shunt.Right}}
{{- end}}
{{- if .Shunt.Left}}
#define {{macro "MAX_SHUNT_VALUE_L"}}{{.Shunt.Left}}
{{- end}}
{{- end}}
{{end}}`
