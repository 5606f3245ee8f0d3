package overlay

import (
	"strings"
	"testing"

	"github.com/dop251/goja"
)

// fakeDOM is just enough of a browser for the client script: elements with
// attributes, parent links, classList and a document that records listeners.
const fakeDOM = `
var handlers = {};
var byId = {};
var opened = [];
var edited = [];
function El(id, attrs, parent) {
	var cls = {};
	this.id = id;
	this.attrs = attrs || {};
	this.parentNode = parent || null;
	this.style = {};
	this.classList = {
		add: function (c) { cls[c] = true; },
		remove: function (c) { delete cls[c]; },
		contains: function (c) { return !!cls[c]; }
	};
}
El.prototype.getAttribute = function (n) {
	return Object.prototype.hasOwnProperty.call(this.attrs, n) ? this.attrs[n] : null;
};
El.prototype.contains = function (o) {
	while (o) { if (o === this) return true; o = o.parentNode; }
	return false;
};
function mk(id, attrs, parent) { var e = new El(id, attrs, parent); if (id) byId[id] = e; return e; }
function fire(type, target, related) {
	handlers[type]({ target: target, relatedTarget: related || null, clientX: 10, clientY: 20 });
}
var document = {
	addEventListener: function (t, f) { handlers[t] = f; },
	getElementById: function (id) { return byId[id] || null; }
};
var window = { open: function (u) { opened.push(u); } };

var root = mk("root", {});
var node = mk("", { "data-element-id": "api" }, root);
var itemA = mk("", { "data-item": "", "data-modal": "modal-a", "data-modal-on": "click" }, node);
var labelA = mk("", {}, itemA);
var itemB = mk("", { "data-item": "", "data-modal": "modal-b", "data-modal-on": "click" }, node);
var itemURL = mk("", { "data-item": "", "data-url": "https://example.com", "data-modal": "modal-u", "data-modal-on": "click" }, node);
var itemHover = mk("", { "data-item": "", "data-modal": "modal-h", "data-modal-on": "hover" }, node);
var hoverChild = mk("", {}, itemHover);
var modalA = mk("modal-a", {}, root);
var modalB = mk("modal-b", {}, root);
var modalU = mk("modal-u", {}, root);
var modalH = mk("modal-h", {}, root);
`

func newScriptVM(t *testing.T) *goja.Runtime {
	t.Helper()
	vm := goja.New()
	if _, err := vm.RunString(fakeDOM); err != nil {
		t.Fatalf("fake DOM: %v", err)
	}
	if _, err := vm.RunString(Script()); err != nil {
		t.Fatalf("client script: %v", err)
	}
	return vm
}

func eval(t *testing.T, vm *goja.Runtime, expr string) goja.Value {
	t.Helper()
	v, err := vm.RunString(expr)
	if err != nil {
		t.Fatalf("%s: %v", expr, err)
	}
	return v
}

func visible(t *testing.T, vm *goja.Runtime, modal string) bool {
	t.Helper()
	return eval(t, vm, modal+`.classList.contains("visible")`).ToBoolean()
}

func TestScriptClickModalsAreExclusive(t *testing.T) {
	vm := newScriptVM(t)

	eval(t, vm, `fire("click", labelA)`)
	if !visible(t, vm, "modalA") {
		t.Fatal("clicking item A should open modal A")
	}
	if got := eval(t, vm, `modalA.style.left`).String(); got != "30px" {
		t.Errorf("modal A left = %q, want 30px", got)
	}

	eval(t, vm, `fire("click", itemB)`)
	if visible(t, vm, "modalA") {
		t.Error("opening modal B should close modal A")
	}
	if !visible(t, vm, "modalB") {
		t.Error("modal B should be open")
	}

	eval(t, vm, `fire("click", itemB)`)
	if visible(t, vm, "modalB") {
		t.Error("clicking item B again should toggle modal B closed")
	}

	eval(t, vm, `fire("click", itemA)`)
	eval(t, vm, `fire("click", modalA)`)
	if !visible(t, vm, "modalA") {
		t.Error("clicks inside the open modal should keep it open")
	}
	eval(t, vm, `fire("click", root)`)
	if visible(t, vm, "modalA") {
		t.Error("an outside click should close the active modal")
	}
}

func TestScriptURLWinsOverClickModal(t *testing.T) {
	vm := newScriptVM(t)

	eval(t, vm, `fire("click", itemURL)`)
	if visible(t, vm, "modalU") {
		t.Error("click modal should not open when the item has a URL")
	}
	if got := eval(t, vm, `opened.join(",")`).String(); got != "https://example.com" {
		t.Errorf("opened = %q, want the item URL", got)
	}
}

func TestScriptHoverModal(t *testing.T) {
	vm := newScriptVM(t)

	eval(t, vm, `fire("mouseover", itemHover, node)`)
	if !visible(t, vm, "modalH") {
		t.Fatal("entering the item should show its hover modal")
	}

	eval(t, vm, `fire("mouseout", itemHover, hoverChild)`)
	if !visible(t, vm, "modalH") {
		t.Error("moving onto a child of the item should keep the modal")
	}

	eval(t, vm, `fire("mouseout", hoverChild, node)`)
	if visible(t, vm, "modalH") {
		t.Error("leaving the item should hide its hover modal")
	}

	eval(t, vm, `fire("click", itemHover)`)
	if visible(t, vm, "modalH") {
		t.Error("clicking a hover item should not open its modal")
	}
}

func TestScriptForwardsNodeClicks(t *testing.T) {
	vm := newScriptVM(t)

	eval(t, vm, `fire("click", node)`)
	eval(t, vm, `window.openEditorForElement = function (id) { edited.push(id); }`)
	eval(t, vm, `fire("click", node)`)
	eval(t, vm, `fire("click", itemA)`)

	if got := eval(t, vm, `edited.join(",")`).String(); got != "api" {
		t.Errorf("edited = %q, want a single call for the node body", got)
	}
}

func TestScriptsAreCDATASafe(t *testing.T) {
	for name, s := range map[string]string{"client": Script(), "live reload": LiveReloadScript()} {
		if strings.Contains(s, "]]>") {
			t.Errorf("%s script contains a CDATA terminator", name)
		}
	}
}
