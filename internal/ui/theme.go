package ui

// settingsScript submits the language switch as soon as a new value is
// picked. Theme and language live on the server, so the reload renders the
// new state everywhere.
const settingsScript = `(function(){
  if (window.lucide) { window.lucide.createIcons(); }
  document.querySelectorAll('select[data-autosubmit]').forEach(function(sel){
    sel.addEventListener('change', function(){
      if (sel.form) { sel.form.submit(); }
    });
  });
})();`
