package overlay

// clientScript is the only behavior shipped with a rendered diagram. It keeps
// at most one click modal open, lets a URL take precedence over a click
// modal, and forwards clicks on node bodies to window.openEditorForElement
// when the host page defines it.
const clientScript = `(function(){
var active=null;
function find(el,attr){while(el&&el.getAttribute){if(el.getAttribute(attr)!==null)return el;el=el.parentNode;}return null;}
function modal(id){return id?document.getElementById(id):null;}
function show(e,id){var m=modal(id);if(!m)return;m.style.left=(e.clientX+20)+"px";m.style.top=e.clientY+"px";m.classList.add("visible");}
function hide(id){var m=modal(id);if(m)m.classList.remove("visible");}
function toggle(e,id){if(active&&active!==id)hide(active);var m=modal(id);if(!m)return;if(m.classList.contains("visible")){hide(id);active=null;}else{show(e,id);active=id;}}
function crossing(e,item){return !e.relatedTarget||!item.contains(e.relatedTarget);}
document.addEventListener("mouseover",function(e){var item=find(e.target,"data-item");if(item&&crossing(e,item)&&item.getAttribute("data-modal-on")==="hover")show(e,item.getAttribute("data-modal"));});
document.addEventListener("mouseout",function(e){var item=find(e.target,"data-item");if(item&&crossing(e,item)&&item.getAttribute("data-modal-on")==="hover")hide(item.getAttribute("data-modal"));});
document.addEventListener("click",function(e){
var item=find(e.target,"data-item");
if(item){var url=item.getAttribute("data-url");if(url){window.open(url,"_blank");return;}if(item.getAttribute("data-modal-on")==="click"){toggle(e,item.getAttribute("data-modal"));return;}}
if(active){var m=modal(active);if(!m||!m.contains(e.target)){hide(active);active=null;}}
var node=find(e.target,"data-element-id");
if(node&&typeof window.openEditorForElement==="function")window.openEditorForElement(node.getAttribute("data-element-id"));
});
})();`

// liveReloadScript reloads the page whenever the server pushes "reload" on
// /events.
const liveReloadScript = `(function(){try{var es=new EventSource("/events");es.onmessage=function(e){if(e&&e.data==="reload"){location.reload();}};}catch(err){if(window.console)console.warn("live reload unavailable",err);}})();`

// Script returns the fixed client script interpreting the data-* attributes.
func Script() string { return clientScript }

// LiveReloadScript returns the Server-Sent Events client used by served
// artifacts.
func LiveReloadScript() string { return liveReloadScript }
